package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrInvalidGoal = errors.New("goal must be greater than zero")

// Project is a crowdfunding campaign. Amounts are in the smallest currency unit.
type Project struct {
	ID           string    `json:"id" bson:"_id"`
	OwnerID      string    `json:"ownerId" bson:"owner_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	CategoryID   string    `json:"categoryId" bson:"category_id"`
	ImageURL     string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Goal         int64     `json:"goal" bson:"goal"`
	MoneyReached int64     `json:"moneyReached" bson:"money_reached"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

var ErrUploadTooLarge = errors.New("upload exceeds size limit")
