// Package proxy builds API Gateway proxy responses with the same envelope
// the HTTP handlers use.
package proxy

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

func corsHeaders(methods string) map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": methods,
		"Access-Control-Allow-Headers": "Content-Type, X-Amz-Date, Authorization, X-Api-Key, X-Amz-Security-Token",
	}
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Success wraps data in the success envelope.
func Success(status int, methods string, data any) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(successEnvelope{Success: true, Data: data})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(methods),
		Body:       string(body),
	}
}

// Error wraps a failure in the error envelope.
func Error(status int, methods, errType, message, requestID string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(errorEnvelope{
		Success: false,
		Error:   errorBody{Type: errType, Message: message, RequestID: requestID},
	})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(methods),
		Body:       string(body),
	}
}
