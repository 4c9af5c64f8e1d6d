// Package models contains data types and constants for the goalchat assistant client.
package models

// ChatPath is appended to the configured base endpoint for every reply request
const ChatPath = "/chat"

// DefaultEndpoint is used when neither config nor environment provide one
const DefaultEndpoint = "http://localhost:8000"

// Localized strings shown in the conversation
const (
	// FallbackReply is shown when a successful response carries no reply
	FallbackReply = "답변을 받아오지 못했습니다."

	// ErrorReply replaces the assistant reply when the request fails
	ErrorReply = "죄송합니다. 응답을 가져오는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."

	// PendingText is shown inside the loading placeholder
	PendingText = "월드컵 정보를 찾고 있습니다..."

	// PendingID identifies the loading placeholder so it can be located and removed
	PendingID = "loading-message"

	// StartupMessage is logged once when the client starts
	StartupMessage = "월드컵 정보 어시스턴트가 시작되었습니다."
)

// DefaultHeaders returns the headers sent with every reply request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "goalchat/1.0",
	}
}
