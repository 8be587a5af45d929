package mailingservices

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	to      string
	subject string
	text    string
}

// newMailgunServer accepts every message send and records its form fields.
func newMailgunServer(t *testing.T) (*httptest.Server, func() []sentMessage) {
	var (
		mu   sync.Mutex
		sent []sentMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/messages") {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		sent = append(sent, sentMessage{
			to:      r.FormValue("to"),
			subject: r.FormValue("subject"),
			text:    r.FormValue("text"),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<20261015.1@example.com>","message":"Queued. Thank you."}`))
	}))
	t.Cleanup(srv.Close)

	return srv, func() []sentMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]sentMessage(nil), sent...)
	}
}

func newTestMailgun(t *testing.T) (*Mailgun, func() []sentMessage) {
	srv, sent := newMailgunServer(t)
	mg := mailgun.NewMailgun("example.com", "key-test")
	mg.SetAPIBase(srv.URL + "/v3")
	return &Mailgun{Client: mg, From: "noreply@example.com"}, sent
}

func TestDisabledMailerIsNoOp(t *testing.T) {
	mail := &Mailgun{}

	assert.NoError(t, mail.SendWelcomeMessage("alice@example.com", "alice"))
	assert.NoError(t, mail.SendLeaderNotice("leader@example.com", "New application", "bob applied"))
}

func TestSendLeaderNoticePrefixesSubject(t *testing.T) {
	mail, sent := newTestMailgun(t)

	err := mail.SendLeaderNotice("leader@example.com", "New application", "bob applied to your study.")
	require.NoError(t, err)

	messages := sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "leader@example.com", messages[0].to)
	assert.Equal(t, "[StudyFocus] New application", messages[0].subject)
	assert.Equal(t, "bob applied to your study.", messages[0].text)
}

func TestSendWelcomeMessageGreetsByNickname(t *testing.T) {
	mail, sent := newTestMailgun(t)

	require.NoError(t, mail.SendWelcomeMessage("alice@example.com", "alice"))

	messages := sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "Welcome to StudyFocus!", messages[0].subject)
	assert.Contains(t, messages[0].text, "Hi alice,")
}

func TestSendWrapsProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"forbidden"}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)
	mg := mailgun.NewMailgun("example.com", "key-test")
	mg.SetAPIBase(srv.URL + "/v3")
	mail := &Mailgun{Client: mg, From: "noreply@example.com"}

	err := mail.SendLeaderNotice("leader@example.com", "New application", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailgun send to leader@example.com")
}
