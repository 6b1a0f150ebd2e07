// Package logging writes one JSON object per event through the standard logger.
package logging

import (
	"encoding/json"
	"log"
	"time"
)

const Service = "storefront"

type Fields struct {
	Service    string `json:"service"`
	RequestID  string `json:"request_id,omitempty"`
	OrderID    string `json:"order_id,omitempty"`
	Provider   string `json:"provider,omitempty"`
	Step       string `json:"step,omitempty"`
	Status     string `json:"status,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
}

type entry struct {
	Fields
	Timestamp string `json:"timestamp"`
}

func Log(fields Fields) {
	if fields.Service == "" {
		fields.Service = Service
	}
	data, err := json.Marshal(entry{Fields: fields, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)})
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}

// Since returns the milliseconds elapsed since start.
func Since(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
