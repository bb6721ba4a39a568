package pool

// JSON schemas for the two on-disk pool shapes. Loaded files are validated
// before use so a malformed file surfaces as a descriptive load error
// instead of a half-built session.

const quizFileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "id": { "type": "string" },
    "title": { "type": "string" },
    "pools": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/questionList" }
    },
    "questions": { "$ref": "#/$defs/questionList" }
  },
  "anyOf": [
    { "required": ["pools"] },
    { "required": ["questions"] }
  ],
  "$defs": {
    "questionList": {
      "type": "array",
      "items": { "$ref": "#/$defs/question" }
    },
    "question": {
      "type": "object",
      "required": ["type", "prompt"],
      "properties": {
        "type": { "enum": ["mcq", "tf", "short"] },
        "prompt": { "type": "string", "minLength": 1 },
        "choices": { "type": "array", "items": { "type": "string" } },
        "answer": { "$ref": "#/$defs/stringOrList" },
        "answerText": { "$ref": "#/$defs/stringOrList" },
        "explain": { "type": "string" },
        "mapping": {
          "type": "object",
          "additionalProperties": { "type": "string" }
        }
      }
    },
    "stringOrList": {
      "anyOf": [
        { "type": "string" },
        { "type": "array", "items": { "type": "string" } },
        { "type": "number" }
      ]
    }
  }
}`

const masterPoolSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["generic"],
    "properties": {
      "generic": { "type": "string", "minLength": 1 },
      "brand": {
        "anyOf": [
          { "type": "string" },
          { "type": "array", "items": { "type": "string" } },
          { "type": "null" }
        ]
      },
      "class": { "type": ["string", "null"] },
      "category": { "type": ["string", "null"] },
      "moa": { "type": ["string", "null"] },
      "metadata": {
        "type": "object",
        "properties": {
          "lab": { "type": "integer" },
          "quiz": { "type": "integer" },
          "week": { "type": "integer" },
          "is_new": { "type": "boolean" }
        }
      }
    }
  }
}`
