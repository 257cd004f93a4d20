package transactions

import "multisafepay-sdk/api"

const orderSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type", "order_id", "currency", "amount"],
  "additionalProperties": false,
  "properties": {
    "type": { "enum": ["redirect", "direct", "paymentlink"] },
    "order_id": { "type": "string", "minLength": 1 },
    "currency": { "type": "string", "pattern": "^[A-Z]{3}$" },
    "amount": { "type": "integer", "minimum": 1 },
    "gateway": { "type": "string" },
    "description": { "type": "string", "maxLength": 200 },
    "gateway_info": { "type": "object" },
    "payment_options": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "notification_url": { "type": "string" },
        "notification_method": { "enum": ["POST", "GET"] },
        "redirect_url": { "type": "string" },
        "cancel_url": { "type": "string" },
        "close_window": { "type": "boolean" }
      }
    },
    "customer": { "$ref": "#/definitions/customer" },
    "delivery": { "$ref": "#/definitions/customer" },
    "plugin": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "shop": { "type": "string" },
        "shop_version": { "type": "string" },
        "plugin_version": { "type": "string" },
        "partner": { "type": "string" },
        "shop_root_url": { "type": "string" }
      }
    },
    "second_chance": {
      "type": "object",
      "additionalProperties": false,
      "properties": { "send_email": { "type": "boolean" } }
    },
    "shopping_cart": {
      "type": "object",
      "required": ["items"],
      "additionalProperties": false,
      "properties": {
        "items": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "unit_price", "quantity"],
            "additionalProperties": false,
            "properties": {
              "name": { "type": "string" },
              "description": { "type": "string" },
              "unit_price": { "type": "number" },
              "quantity": { "type": "integer", "minimum": 1 },
              "merchant_item_id": { "type": "string" },
              "tax_table_selector": { "type": "string" }
            }
          }
        }
      }
    },
    "checkout_options": { "type": "object" },
    "var1": { "type": "string" },
    "var2": { "type": "string" },
    "var3": { "type": "string" },
    "days_active": { "type": "integer", "minimum": 1 }
  },
  "definitions": {
    "customer": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "first_name": { "type": "string" },
        "last_name": { "type": "string" },
        "company_name": { "type": "string" },
        "address1": { "type": "string" },
        "address2": { "type": "string" },
        "house_number": { "type": "string" },
        "zip_code": { "type": "string" },
        "city": { "type": "string" },
        "state": { "type": "string" },
        "country": { "type": "string", "pattern": "^[A-Z]{2}$" },
        "phone": { "type": "string" },
        "email": { "type": "string" },
        "locale": { "type": "string" },
        "ip_address": { "type": "string" },
        "forwarded_ip": { "type": "string" },
        "referrer": { "type": "string" },
        "user_agent": { "type": "string" }
      }
    }
  }
}`

const refundSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["amount", "currency", "description"],
  "additionalProperties": false,
  "properties": {
    "amount": { "type": "integer", "minimum": 1 },
    "currency": { "type": "string", "pattern": "^[A-Z]{3}$" },
    "description": { "type": "string" }
  }
}`

var (
	orderSchema  = api.MustSchema(orderSchemaJSON)
	refundSchema = api.MustSchema(refundSchemaJSON)
)
