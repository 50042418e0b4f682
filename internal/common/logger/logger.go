package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Hostname  string `json:"hostname"`
	RequestID string `json:"request_id"`
	DeviceID  string `json:"device_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

var hostname, _ = os.Hostname()

var serviceName = "fraudx-location"

func SetServiceName(name string) {
	serviceName = name
}

func Info(action, message, requestID, deviceID string) {
	output(LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "INFO",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		DeviceID:  deviceID,
	})
}

func Debug(action, message, requestID, deviceID string) {
	output(LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "DEBUG",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		DeviceID:  deviceID,
	})
}

func Warn(action, message, requestID, deviceID, errMsg string) {
	output(LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "WARN",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		DeviceID:  deviceID,
		Error:     errMsg,
	})
}

func Error(action, message, requestID, deviceID, errMsg string) {
	output(LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "ERROR",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		DeviceID:  deviceID,
		Error:     errMsg,
	})
}

func output(entry LogEntry) {
	jsonData, _ := json.Marshal(entry)
	fmt.Println(string(jsonData))
}
