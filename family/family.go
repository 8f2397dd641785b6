/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package family carries the sample document model used by the getting
// started program and the tests.
package family

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Family is a household document. LastName doubles as the partition key
// value, so it is immutable once the item is written.
type Family struct {
	ID           string           `json:"id" dynamodbav:"id"`
	LastName     string           `json:"lastName" dynamodbav:"lastName"`
	District     string           `json:"district,omitempty" dynamodbav:"district,omitempty"`
	Parents      []Parent         `json:"parents,omitempty" dynamodbav:"parents,omitempty"`
	Children     []Child          `json:"children,omitempty" dynamodbav:"children,omitempty"`
	Address      *Address         `json:"address,omitempty" dynamodbav:"address,omitempty"`
	IsRegistered bool             `json:"isRegistered" dynamodbav:"isRegistered"`
	RegisteredAt *strfmt.DateTime `json:"registeredAt,omitempty" dynamodbav:"registeredAt,omitempty"`
}

// Parent is a parent of the household.
type Parent struct {
	FamilyName string `json:"familyName,omitempty" dynamodbav:"familyName,omitempty"`
	FirstName  string `json:"firstName" dynamodbav:"firstName"`
}

// Child is a child of the household.
type Child struct {
	FamilyName string `json:"familyName,omitempty" dynamodbav:"familyName,omitempty"`
	FirstName  string `json:"firstName" dynamodbav:"firstName"`
	Gender     string `json:"gender,omitempty" dynamodbav:"gender,omitempty"`
	Grade      int    `json:"grade,omitempty" dynamodbav:"grade,omitempty"`
	Pets       []Pet  `json:"pets,omitempty" dynamodbav:"pets,omitempty"`
}

// Pet is a household pet.
type Pet struct {
	GivenName string `json:"givenName" dynamodbav:"givenName"`
}

// Address locates the household.
type Address struct {
	State  string `json:"state" dynamodbav:"state"`
	County string `json:"county" dynamodbav:"county"`
	City   string `json:"city" dynamodbav:"city"`
}

func registeredAt(year, month, day int) *strfmt.DateTime {
	dt := strfmt.DateTime(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
	return &dt
}

// Andersen returns the Andersen household sample item.
func Andersen() Family {
	return Family{
		ID:       "AndersenFamily",
		LastName: "Andersen",
		District: "WA5",
		Parents: []Parent{
			{FirstName: "Thomas"},
			{FirstName: "Mary Kay"},
		},
		Children: []Child{
			{
				FirstName: "Henriette Thaulow",
				Gender:    "female",
				Grade:     5,
				Pets:      []Pet{{GivenName: "Fluffy"}},
			},
		},
		Address:      &Address{State: "WA", County: "King", City: "Seattle"},
		IsRegistered: true,
		RegisteredAt: registeredAt(2019, 4, 22),
	}
}

// Wakefield returns the Wakefield household sample item.
func Wakefield() Family {
	return Family{
		ID:       "WakefieldFamily",
		LastName: "Wakefield",
		District: "NY23",
		Parents: []Parent{
			{FamilyName: "Wakefield", FirstName: "Robin"},
			{FamilyName: "Miller", FirstName: "Ben"},
		},
		Children: []Child{
			{
				FamilyName: "Merriam",
				FirstName:  "Jesse",
				Gender:     "female",
				Grade:      8,
				Pets:       []Pet{{GivenName: "Goofy"}, {GivenName: "Shadow"}},
			},
			{
				FamilyName: "Miller",
				FirstName:  "Lisa",
				Gender:     "female",
				Grade:      1,
			},
		},
		Address:      &Address{State: "NY", County: "Manhattan", City: "NY"},
		IsRegistered: false,
	}
}

// Johnson returns the Johnson household sample item.
func Johnson() Family {
	return Family{
		ID:       "JohnsonFamily",
		LastName: "Johnson",
		District: "WA3",
		Parents: []Parent{
			{FirstName: "John"},
			{FirstName: "Lili"},
		},
		Address:      &Address{State: "WA", County: "King", City: "Bellevue"},
		IsRegistered: true,
		RegisteredAt: registeredAt(2020, 1, 9),
	}
}

// Smith returns the Smith household sample item.
func Smith() Family {
	return Family{
		ID:       "SmithFamily",
		LastName: "Smith",
		District: "WA Puget Sound",
		Parents: []Parent{
			{FirstName: "Robin"},
		},
		Children: []Child{
			{FirstName: "Michelle", Gender: "female", Grade: 7},
			{FirstName: "John", Gender: "male", Grade: 12},
		},
		Address:      &Address{State: "WA", County: "King", City: "Redmond"},
		IsRegistered: false,
	}
}

// All returns the four canned sample households.
func All() []Family {
	return []Family{Andersen(), Wakefield(), Johnson(), Smith()}
}
