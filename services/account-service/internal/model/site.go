package model

import "time"

// NewsletterSubscription is keyed by the lower-cased email address.
type NewsletterSubscription struct {
	Email        string    `bson:"email"        json:"email"`
	SubscribedAt time.Time `bson:"subscribedAt" json:"subscribedAt"`
}

// ContactMessage is a message sent through the site's contact form.
type ContactMessage struct {
	ID        string    `bson:"id"        json:"id"`
	Name      string    `bson:"name"      json:"name"`
	Email     string    `bson:"email"     json:"email"`
	Subject   string    `bson:"subject"   json:"subject"`
	Message   string    `bson:"message"   json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Delivered bool      `bson:"delivered" json:"delivered"`
}
