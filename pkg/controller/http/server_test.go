package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/hatchpay/concierge/pkg/agent"
	httpctrl "github.com/hatchpay/concierge/pkg/controller/http"
	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/repository/memory"
	"github.com/hatchpay/concierge/pkg/usecase"
)

type stubGenerationClient struct {
	response string
	err      error
	calls    int
}

func (c *stubGenerationClient) GenerateResponse(ctx context.Context, modelID types.ModelID, instructions string, messages []model.ChatMessage) (string, error) {
	c.calls++
	return c.response, c.err
}

type stubRetriever struct{}

func (r *stubRetriever) Retrieve(ctx context.Context, query string) ([]model.ContextSnippet, error) {
	return nil, nil
}

type testServer struct {
	server     *httpctrl.Server
	repo       interfaces.Repository
	classifier *stubGenerationClient
	generator  *stubGenerationClient
}

func newTestServer(t *testing.T, classification, generated, refined string) *testServer {
	t.Helper()

	ts := &testServer{
		repo:       memory.New(),
		classifier: &stubGenerationClient{response: classification},
		generator:  &stubGenerationClient{response: generated},
	}

	classifier, err := agent.NewClassifier(ts.classifier, "gpt-5-nano")
	gt.NoError(t, err).Required()

	knowledgeAgent, err := agent.NewKnowledgeAgent(ts.generator, &stubRetriever{}, "gpt-5-nano")
	gt.NoError(t, err).Required()
	csAgent, err := agent.NewCustomerServiceAgent(ts.generator, "gpt-5-nano")
	gt.NoError(t, err).Required()
	agents, err := agent.NewSet(knowledgeAgent, csAgent)
	gt.NoError(t, err).Required()

	personality, err := agent.NewPersonalityAgent(&stubGenerationClient{response: refined}, "gpt-5-nano", "")
	gt.NoError(t, err).Required()

	ts.server = httpctrl.New(usecase.New(ts.repo, classifier, agents, personality))
	return ts
}

func (ts *testServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	t.Run("conversational reply", func(t *testing.T) {
		ts := newTestServer(t, `{"agent": "knowledge"}`, "We are open Mon-Fri 9-6", "Sure! We're open Mon-Fri 9am-6pm")

		rec := ts.request(t, http.MethodPost, "/api/chat", map[string]string{
			"chatInput": "What are your business hours?",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]string
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()

		gt.String(t, resp["userId"]).NotEqual("")
		gt.Value(t, resp["response"]).Equal("Sure! We're open Mon-Fri 9am-6pm")
		gt.Value(t, resp["ticketResponse"]).Equal("")
	})

	t.Run("missing chat input yields 400 with no downstream calls", func(t *testing.T) {
		ts := newTestServer(t, `{"agent": "knowledge"}`, "unused", "unused")

		rec := ts.request(t, http.MethodPost, "/api/chat", map[string]string{
			"userId": "someone",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

		var resp map[string]string
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp["error"]).Equal("Message is required")

		gt.Value(t, ts.classifier.calls).Equal(0)
		gt.Value(t, ts.generator.calls).Equal(0)
	})

	t.Run("supplied user ID is echoed back", func(t *testing.T) {
		ts := newTestServer(t, `{"agent": "knowledge"}`, "answer", "Answer!")

		rec := ts.request(t, http.MethodPost, "/api/chat", map[string]string{
			"userId":    "customer-42",
			"chatInput": "hello",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]string
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp["userId"]).Equal("customer-42")
	})

	t.Run("ticket creation reply", func(t *testing.T) {
		ts := newTestServer(t,
			`{"agent": "customer-service"}`,
			`{"action":"create_ticket","subject":"Login issue","description":"cannot log in"}`,
			"unused",
		)

		rec := ts.request(t, http.MethodPost, "/api/chat", map[string]string{
			"chatInput": "create a ticket, I can't log in",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]string
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()

		gt.Value(t, resp["response"]).Equal("")
		gt.Bool(t, strings.HasPrefix(resp["ticketResponse"], `Ticket created successfully with subject: "Login issue" at `)).True()
	})

	t.Run("pipeline failure yields generic 500", func(t *testing.T) {
		ts := newTestServer(t, "", "unused", "unused")
		ts.classifier.err = goerr.New("provider secret detail")

		rec := ts.request(t, http.MethodPost, "/api/chat", map[string]string{
			"chatInput": "hello",
		})
		gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)

		var resp map[string]string
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp["error"]).Equal("An internal error occurred.")
		gt.Bool(t, strings.Contains(rec.Body.String(), "provider secret detail")).False()
	})
}

func TestTicketEndpoints(t *testing.T) {
	t.Run("list tickets", func(t *testing.T) {
		ts := newTestServer(t, "", "", "")

		_, err := ts.repo.Ticket().Create(context.Background(), &model.Ticket{
			Subject:     "Login issue",
			Description: "cannot log in",
		})
		gt.NoError(t, err).Required()

		rec := ts.request(t, http.MethodGet, "/api/tickets", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var tickets []*model.Ticket
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tickets)).Required()
		gt.Array(t, tickets).Length(1).Required()
		gt.Value(t, tickets[0].Subject).Equal("Login issue")
	})

	t.Run("update ticket status", func(t *testing.T) {
		ts := newTestServer(t, "", "", "")

		created, err := ts.repo.Ticket().Create(context.Background(), &model.Ticket{
			Subject:     "Login issue",
			Description: "cannot log in",
		})
		gt.NoError(t, err).Required()

		rec := ts.request(t, http.MethodPatch, "/api/tickets/"+created.ID.String()+"/status", map[string]string{
			"status": "closed",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var ticket model.Ticket
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket)).Required()
		gt.Value(t, ticket.Status).Equal(types.TicketStatusClosed)
	})

	t.Run("invalid status yields 400", func(t *testing.T) {
		ts := newTestServer(t, "", "", "")

		rec := ts.request(t, http.MethodPatch, "/api/tickets/some-id/status", map[string]string{
			"status": "escalated",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown ticket yields 404", func(t *testing.T) {
		ts := newTestServer(t, "", "", "")

		rec := ts.request(t, http.MethodPatch, "/api/tickets/"+types.NewTicketID().String()+"/status", map[string]string{
			"status": "closed",
		})
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestConversationEndpoint(t *testing.T) {
	ts := newTestServer(t, "", "", "")
	ctx := context.Background()
	userID := types.NewUserID()

	gt.NoError(t, ts.repo.ChatMemory().Append(ctx, userID, model.UserMessage("hello"))).Required()

	rec := ts.request(t, http.MethodDelete, "/api/conversations/"+userID.String(), nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	messages, err := ts.repo.ChatMemory().GetConversation(ctx, userID, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, messages).Length(0)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, "", "", "")

	rec := ts.request(t, http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"status":"ok"}`)
}
