package domain

import (
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrMentorNotFound = errors.New("mentor not found")
var ErrResourceNotFound = errors.New("resource not found")
var ErrAlreadySubscribed = errors.New("already subscribed to mentor")
var ErrCategoryExists = errors.New("category already exists")

type Category struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Mentor struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"userId,omitempty" bson:"user_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Expertise   string    `json:"expertise" bson:"expertise"`
	Bio         string    `json:"bio" bson:"bio"`
	PhotoURL    string    `json:"photoUrl,omitempty" bson:"photo_url,omitempty"`
	Subscribers int64     `json:"subscribers" bson:"subscribers"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// MentorSubscription links a user to a mentor they follow.
type MentorSubscription struct {
	ID        string    `json:"id" bson:"_id"`
	MentorID  string    `json:"mentorId" bson:"mentor_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Resource is an entry of the educational library.
type Resource struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	ObjectKey   string    `json:"-" bson:"object_key"`
	ContentType string    `json:"contentType" bson:"content_type"`
	DownloadURL string    `json:"downloadUrl,omitempty" bson:"-"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type Testimonial struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	Author    string    `json:"author" bson:"author"`
	Content   string    `json:"content" bson:"content"`
	Rating    int       `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
