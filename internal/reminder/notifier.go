package reminder

import (
	"encoding/json"
	"fmt"

	"github.com/kiruthikag2611/Planify/internal/rabbit"
	log "github.com/sirupsen/logrus"
)

// Decode reads a queued reminder.
func Decode(body []byte) (rabbit.Message, error) {
	m := rabbit.Message{}
	if err := json.Unmarshal(body, &m); err != nil {
		return m, fmt.Errorf("failed to parse reminder: %w", err)
	}
	if m.ID == "" || m.OwnerID == "" {
		return m, fmt.Errorf("reminder without event or owner: %s", body)
	}
	return m, nil
}

func Text(m rabbit.Message) string {
	return fmt.Sprintf("%s (%s) starts at %s on %s", m.Title, m.Type, m.StartTime, m.Date)
}

// Deliver is the sender side: every reminder becomes a log notification for
// its owner.
func Deliver(body []byte) error {
	m, err := Decode(body)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"user":  m.OwnerID,
		"event": m.ID,
	}).Info(Text(m))
	return nil
}
