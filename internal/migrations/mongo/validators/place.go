package validators

import "go.mongodb.org/mongo-driver/bson"

var PlaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner",
			"title",
			"address",
			"max_guests",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 140,
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 250,
			},

			"photos": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 5000,
			},

			"perks": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"extra_info": bson.M{
				"bsonType":  "string",
				"maxLength": 5000,
			},

			"check_in": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  23,
			},

			"check_out": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  23,
			},

			"max_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  200,
			},

			"price": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
