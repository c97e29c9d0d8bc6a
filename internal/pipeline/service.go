package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal"
	"orderdesk/internal/llm"
	"orderdesk/internal/storage"
	"orderdesk/internal/util"
)

const (
	msgNeedBoth     = "Please provide your order number (e.g., 0000) and the e-mail used to place the order."
	msgNeedOrderID  = "Please provide your order number (e.g., 1003)."
	msgInvalidEmail = "That e-mail doesn’t look valid. Please use name@example.com."
	msgNeedEmail    = "For verification, please also provide the e-mail used to place the order."
	msgNotFound     = "I couldn’t find order #%s. Please verify the number."
	msgMismatch     = "We found order #%s, but the e-mail doesn’t match our records."
)

// Loader is the read-through view of the external order table.
type Loader interface {
	Load(ctx context.Context) ([]internal.OrderRecord, error)
}

// Service sequences extraction, validation, load, match and reply composition
// for one request. It holds no per-request state and is safe for concurrent
// use. The audit db is optional; insert failures are logged, never surfaced.
type Service struct {
	loader    Loader
	extractor *Extractor
	composer  *Composer
	db        *storage.DB
	log       *zap.Logger
}

func NewService(loader Loader, completer llm.Completer, db *storage.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		loader:    loader,
		extractor: NewExtractor(completer),
		composer:  NewComposer(completer),
		db:        db,
		log:       log,
	}
}

// Answer runs the conversation state machine. Every resolvable condition is a
// normal reply; the returned error is non-nil only when the order table could
// not be loaded.
func (s *Service) Answer(ctx context.Context, req internal.AskRequest) (string, error) {
	question := strings.TrimSpace(req.Question)

	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		orderID = s.extractor.OrderID(ctx, question)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = util.ExtractEmail(question)
	}

	switch {
	case orderID == "" && email == "":
		return s.finish(question, orderID, email, internal.OutcomeNeedBoth, msgNeedBoth), nil
	case orderID == "":
		return s.finish(question, orderID, email, internal.OutcomeNeedOrderID, msgNeedOrderID), nil
	case email != "" && !util.IsValidEmail(email):
		return s.finish(question, orderID, email, internal.OutcomeInvalidEmail, msgInvalidEmail), nil
	case email == "":
		return s.finish(question, orderID, email, internal.OutcomeNeedEmail, msgNeedEmail), nil
	}

	table, err := s.loader.Load(ctx)
	if err != nil {
		s.record(question, orderID, email, internal.OutcomeLoadFailed, "")
		return "", fmt.Errorf("load order table: %w", err)
	}

	match := FindOrder(table, orderID, email)
	switch match.Status {
	case internal.MatchNotFound:
		return s.finish(question, orderID, email, internal.OutcomeNotFound, fmt.Sprintf(msgNotFound, orderID)), nil
	case internal.MatchEmailMismatch:
		reply := fmt.Sprintf(msgMismatch, orderID)
		if suggestion := util.SuggestDomain(email); suggestion != "" {
			reply += fmt.Sprintf(" Did you mean **%s**?", suggestion)
		}
		return s.finish(question, orderID, email, internal.OutcomeEmailMismatch, reply), nil
	}

	composeQuestion := ""
	if WantsAnswer(question) {
		composeQuestion = question
	}
	reply, err := s.composer.Compose(ctx, *match.Record, composeQuestion)
	if err != nil {
		s.log.Warn("reply generation failed, using template", zap.String("orderId", orderID), zap.Error(err))
		reply = TemplateReply(*match.Record)
	}
	return s.finish(question, orderID, email, internal.OutcomeAnswered, reply), nil
}

func (s *Service) finish(question, orderID, email string, outcome internal.Outcome, reply string) string {
	s.record(question, orderID, email, outcome, reply)
	return reply
}

func (s *Service) record(question, orderID, email string, outcome internal.Outcome, reply string) {
	if s.db == nil {
		return
	}
	row := internal.InteractionRow{
		ID:       uuid.NewString(),
		Question: question,
		OrderID:  orderID,
		Email:    email,
		Outcome:  string(outcome),
		Reply:    reply,
	}
	if err := s.db.InsertInteraction(row); err != nil {
		s.log.Warn("audit insert failed", zap.String("outcome", string(outcome)), zap.Error(err))
	}
}
