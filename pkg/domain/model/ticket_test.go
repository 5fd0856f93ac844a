package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

func TestParseTicketAction(t *testing.T) {
	t.Run("valid ticket payload", func(t *testing.T) {
		raw := `{"action":"create_ticket","subject":"Login issue","description":"Cannot log in since yesterday","status":"open"}`
		action, ok := model.ParseTicketAction(raw)
		gt.Bool(t, ok).True()
		gt.Value(t, action.Subject).Equal("Login issue")
		gt.Value(t, action.Description).Equal("Cannot log in since yesterday")
		gt.Value(t, action.Status).Equal(types.TicketStatusOpen)
	})

	t.Run("missing status defaults to open", func(t *testing.T) {
		raw := `{"action":"create_ticket","subject":"Refund request","description":"Double charge on card"}`
		action, ok := model.ParseTicketAction(raw)
		gt.Bool(t, ok).True()
		gt.Value(t, action.Status).Equal(types.TicketStatusOpen)
	})

	t.Run("plain prose is not a ticket", func(t *testing.T) {
		_, ok := model.ParseTicketAction("Sure, our business hours are Mon-Fri 9-6.")
		gt.Bool(t, ok).False()
	})

	t.Run("json with other action is not a ticket", func(t *testing.T) {
		_, ok := model.ParseTicketAction(`{"action":"no_ticket"}`)
		gt.Bool(t, ok).False()
	})

	t.Run("json of the wrong shape is not a ticket", func(t *testing.T) {
		_, ok := model.ParseTicketAction(`{"agent":"knowledge"}`)
		gt.Bool(t, ok).False()
	})

	t.Run("ticket action without subject is rejected", func(t *testing.T) {
		_, ok := model.ParseTicketAction(`{"action":"create_ticket","description":"no subject"}`)
		gt.Bool(t, ok).False()
	})

	t.Run("empty string is not a ticket", func(t *testing.T) {
		_, ok := model.ParseTicketAction("")
		gt.Bool(t, ok).False()
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		raw := "\n  {\"action\":\"create_ticket\",\"subject\":\"s\",\"description\":\"d\"}  \n"
		_, ok := model.ParseTicketAction(raw)
		gt.Bool(t, ok).True()
	})
}

func TestChatMessage_Validate(t *testing.T) {
	gt.NoError(t, model.UserMessage("hello").Validate())
	gt.NoError(t, model.AssistantMessage("hi").Validate())
	gt.NoError(t, model.SystemMessage("context").Validate())

	bad := model.ChatMessage{Role: "tool", Content: "x"}
	gt.Error(t, bad.Validate())
}
