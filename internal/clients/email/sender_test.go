package email

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Deliver(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newTestSender(t *testing.T, transport Transport) *Sender {
	renderer, err := NewRenderer("")
	require.NoError(t, err)
	return NewSender(renderer, transport)
}

func Test_Sender_Send_ShouldDeliverRenderedMessage(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Deliver", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return msg.To == "student1@example.com" &&
			msg.Subject == "Important: MIT Application Deadline in 5 Days" &&
			msg.HasContent()
	})).Return(nil).Once()

	sender := newTestSender(t, transport)

	ok := sender.Send(context.Background(), TemplateDeadline, "student1@example.com",
		Data{UniversityName: "MIT", Deadline: "2025-01-04", DaysLeft: 5})

	assert.True(t, ok)
	transport.AssertExpectations(t)
}

func Test_Sender_Send_DeliveryFailure_ShouldReturnFalse(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	sender := newTestSender(t, transport)

	assert.False(t, sender.Send(context.Background(), TemplateGeneric, "a@example.com", Data{Title: "t"}))
}

func Test_Sender_Send_EmptyAddress_ShouldNotDeliver(t *testing.T) {
	transport := &mockTransport{}
	sender := newTestSender(t, transport)

	assert.False(t, sender.Send(context.Background(), TemplateDeadline, "", Data{UniversityName: "MIT"}))
	transport.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func Test_Sender_Send_CancelledContextWithRateLimit_ShouldReturnFalse(t *testing.T) {
	transport := &mockTransport{}
	sender := newTestSender(t, transport)
	sender.SetRateLimit(0.001)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, sender.Send(ctx, TemplateGeneric, "a@example.com", Data{Title: "t"}))
	transport.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func Test_ConsoleTransport_ShouldKeepSentMessages(t *testing.T) {
	transport := NewConsoleTransport("UniNotify AI", "notify@uninotify.ai")
	sender := newTestSender(t, transport)

	assert.True(t, sender.Send(context.Background(), TemplateScholarship, "a@example.com",
		Data{UniversityName: "Oxford", Details: "Rhodes"}))

	sent := transport.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Scholarship Opportunity at Oxford", sent[0].Subject)
}
