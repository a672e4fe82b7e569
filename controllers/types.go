package controllers

import (
	"github.com/gin-gonic/gin"
)

// Notification is the toast the client shows for a response.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

type StandardResponse struct {
	Success      bool          `json:"success"`
	Data         interface{}   `json:"data,omitempty"`
	Meta         interface{}   `json:"meta,omitempty"`
	Message      string        `json:"message,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Navigate     string        `json:"navigate,omitempty"`
}

func notice(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: "default"}
}

func destructive(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: "destructive"}
}

// errorBody is the failure envelope. n and navigate may be empty.
func errorBody(msg string, n *Notification, navigate string) gin.H {
	body := gin.H{"error": msg, "success": false}
	if n != nil {
		body["notification"] = n
	}
	if navigate != "" {
		body["navigate"] = navigate
	}
	return body
}
