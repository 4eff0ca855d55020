package mailer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/houseofplants/houseofplants/internal/config"
)

func TestMailer_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Mail
		want bool
	}{
		{"no host", config.Mail{}, false},
		{"host configured", config.Mail{Host: "smtp.example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.cfg).Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWelcomeBody_GreetsByName(t *testing.T) {
	body := fmt.Sprintf(welcomeBody, "Alice")

	if !strings.Contains(body, "Hi Alice,") {
		t.Errorf("welcome body does not greet the user:\n%s", body)
	}
}
