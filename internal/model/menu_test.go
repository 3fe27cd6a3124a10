package model

import "testing"

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusSending, StatusSent, true},
		{StatusSent, StatusProcessed, true},
		{StatusSending, StatusProcessed, false},
		{StatusSent, StatusSending, false},
		{StatusProcessed, StatusSent, false},
		{StatusProcessed, StatusProcessed, false},
		{StatusDelivered, StatusSent, false},
		{StatusSending, StatusDelivered, false},
	}
	for _, tt := range tests {
		if got := ValidStatusTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidStatusTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsUser(t *testing.T) {
	if !(Message{Sender: SenderUser}).IsUser() {
		t.Error("user message not reported as user")
	}
	if (Message{Sender: SenderSystem}).IsUser() {
		t.Error("system message reported as user")
	}
}
