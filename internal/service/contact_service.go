package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/notaryweb/internal/mail"
	"github.com/notaryweb/internal/resource"
)

// ContactInput 公共联系表单
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=200"`
	Phone   string `json:"phone" validate:"max=40"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

// ContactService validates contact requests and forwards them to the office mailbox.
type ContactService struct {
	sender mail.Sender
}

// NewContactService creates a ContactService.
func NewContactService(sender mail.Sender) *ContactService {
	return &ContactService{sender: sender}
}

// Submit 校验表单并发送邮件，校验失败返回 *resource.ValidationError。
func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	in.normalize()
	if err := resource.Validate(&in); err != nil {
		return err
	}

	subject := in.Subject
	if subject == "" {
		subject = "Contato pelo site"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Nome: %s\n", in.Name)
	fmt.Fprintf(&body, "E-mail: %s\n", in.Email)
	if in.Phone != "" {
		fmt.Fprintf(&body, "Telefone: %s\n", in.Phone)
	}
	body.WriteString("\n")
	body.WriteString(in.Message)

	if err := s.sender.Send(ctx, mail.Message{
		ReplyTo: in.Email,
		Subject: subject,
		Body:    body.String(),
	}); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}
