package email

import (
	"context"
	"fmt"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"net/http"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridTransport struct {
	key  string
	from *sgmail.Email
	host string
	api  func(request rest.Request) (*rest.Response, error)
}

func NewSendgridTransport(key, fromName, fromAddress string) *SendgridTransport {
	return &SendgridTransport{
		key:  key,
		from: sgmail.NewEmail(fromName, fromAddress),
		host: sendgridHost,
		api:  sendgrid.API,
	}
}

func (t *SendgridTransport) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail("", msg.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(t.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)
	return m
}

func (t *SendgridTransport) Deliver(ctx context.Context, msg Message) error {
	req := sendgrid.GetRequest(t.key, sendgridEndpoint, t.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(t.prepare(msg))

	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := t.api(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}
	return nil
}
