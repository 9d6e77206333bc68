package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("без настроек клиент не создается", func(t *testing.T) {
		Instance = nil
		Connect("", "", "", "", false)
		require.Nil(t, Instance)
	})
	t.Run("с настройками", func(t *testing.T) {
		Connect("desk@test.ru", "secret", "smtp.test.ru", "465", true)
		require.NotNil(t, Instance)
		Instance = nil
	})
}

func TestBuildMessage(t *testing.T) {
	t.Run("заголовки письма", func(t *testing.T) {
		msg := buildMessage("desk@test.ru", "user@test.ru", "Решение по заявке", "Одобрена")
		require.True(t, strings.HasPrefix(msg, "From: desk@test.ru\r\n"))
		require.Contains(t, msg, "To: user@test.ru\r\n")
		require.Contains(t, msg, "Subject: Facility Desk - Решение по заявке\r\n")
		require.True(t, strings.HasSuffix(msg, "\r\n\r\nОдобрена\r\n"))
	})
}
