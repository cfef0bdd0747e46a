package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quiz_sensei_backend/internal/config"
	"quiz_sensei_backend/pkg/logger"

	"go.uber.org/zap"
)

// MailService 通过事务邮件 HTTP API 发送测验链接，未配置 API Key 时静默跳过
type MailService struct {
	Cfg    *config.MailConfig
	Client *http.Client
}

func NewMailService(cfg *config.MailConfig) *MailService {
	return &MailService{
		Cfg: cfg,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type mailRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type mailPayload struct {
	Sender      mailRecipient   `json:"sender"`
	To          []mailRecipient `json:"to"`
	Subject     string          `json:"subject"`
	HTMLContent string          `json:"htmlContent"`
}

func (s *MailService) Enabled() bool {
	return s.Cfg.APIKey != "" && s.Cfg.SenderEmail != ""
}

// SendQuizLink 给单个收件人发送测验邀请，返回错误由调用方决定是否忽略
func (s *MailService) SendQuizLink(toEmail, quizTitle, uniqueLink string) error {
	if !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	link := fmt.Sprintf("%s/quiz/%s", strings.TrimRight(s.Cfg.FrontendBaseURL, "/"), uniqueLink)
	payload := mailPayload{
		Sender:  mailRecipient{Email: s.Cfg.SenderEmail, Name: s.Cfg.SenderName},
		To:      []mailRecipient{{Email: toEmail, Name: toEmail[:strings.Index(toEmail, "@")]}},
		Subject: "Quiz Link",
		HTMLContent: fmt.Sprintf(
			"<p>Hello,</p><p>Here is your quiz link for <b>%s</b>:</p><p><a href=%q>%s</a></p><p>Best regards!</p>",
			quizTitle, link, link),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.Cfg.APIBaseURL+"/v3/smtp/email", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.Cfg.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendQuizLinkBatch 异步逐个发送，单个收件人失败不影响其余
func (s *MailService) SendQuizLinkBatch(emails []string, quizTitle, uniqueLink string) {
	if !s.Enabled() {
		logger.Log.Warn("mail service not configured, skipping quiz link emails",
			zap.Int("recipients", len(emails)))
		return
	}

	go func() {
		for _, email := range emails {
			if err := s.SendQuizLink(email, quizTitle, uniqueLink); err != nil {
				logger.Log.Error("failed to send quiz link",
					zap.String("email", email),
					zap.Error(err))
				continue
			}
			logger.Log.Info("quiz link sent", zap.String("email", email))
		}
	}()
}
