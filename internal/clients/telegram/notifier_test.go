package telegram

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func Test_Notifier_Notify_SendsToConfiguredChat(t *testing.T) {
	api := &mockSender{}
	api.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		msg, ok := c.(tgbotapi.MessageConfig)
		return ok && msg.ChatID == 42 && msg.Text == "report"
	})).Return(nil).Once()

	notifier := &Notifier{api: api, chatID: 42}

	assert.NoError(t, notifier.Notify("report"))
	api.AssertExpectations(t)
}

func Test_Notifier_Notify_PropagatesError(t *testing.T) {
	api := &mockSender{}
	api.On("Send", mock.Anything).Return(errors.New("chat not found"))

	notifier := &Notifier{api: api, chatID: 42}

	assert.ErrorContains(t, notifier.Notify("report"), "chat not found")
}

func Test_SplitMessage_RespectsLimitAndLines(t *testing.T) {
	text := strings.Repeat("line of text\n", 10)

	chunks := splitMessage(text, 30)

	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 30)
		assert.True(t, strings.HasSuffix(chunk, "\n"))
	}
}

func Test_SplitMessage_LongLine_IsCut(t *testing.T) {
	chunks := splitMessage(strings.Repeat("x", 25), 10)
	assert.Equal(t, []string{"xxxxxxxxxx", "xxxxxxxxxx", "xxxxx"}, chunks)
}
