package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"church_backend/internal/models"
	"church_backend/internal/repositories"
	"church_backend/internal/sms"
	"church_backend/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const smsBatchSize = 30

// --- Custom Service Errors for Messages ---
var (
	ErrNoRecipients  = errors.New("no recipients found")
	ErrMessageTarget = errors.New("target id does not match target type")
)

// recipientCriteria narrows the audience of a bulk message.
var recipientCriteria = map[string]models.MemberCriteria{
	"members": {},
	"workers": {MemberStatus: models.MemberStatusWorker},
	"adults":  {Category: models.CategoryAdult},
	"youths":  {Category: models.CategoryYouth},
	"males":   {Gender: models.GenderMale},
	"females": {Gender: models.GenderFemale},
}

// RecipientCategories lists the audiences a message can be sent to.
func RecipientCategories() []string {
	return []string{"members", "workers", "adults", "youths", "males", "females"}
}

// --- Message DTOs ---
type SendMessageRequest struct {
	GroupID    string `json:"groupId" binding:"required_without=ChurchID,excluded_with=ChurchID,omitempty,uuid"`
	ChurchID   string `json:"churchId" binding:"omitempty,uuid"`
	Category   string `json:"category" binding:"required,recipientcategory"`
	AddNames   *bool  `json:"addNames" binding:"required"`
	Message    string `json:"message" binding:"required,notblank"`
	Salutation string `json:"salutation"`
	TargetType string `json:"targetType" binding:"required,target"`
}

// MessageReceipt acknowledges a bulk message accepted for delivery.
type MessageReceipt struct {
	RecipientCount int `json:"recipientCount"`
}

// --- MessageService Interface ---
type MessageService interface {
	SendMessages(ctx context.Context, caller models.AuthUser, req SendMessageRequest) (*MessageReceipt, error)
	// Wait blocks until every background delivery has finished.
	Wait()
}

type messageService struct {
	memberRepo repositories.MemberRepository
	churchRepo repositories.ChurchRepository
	sender     sms.Sender
	inflight   sync.WaitGroup
}

// NewMessageService creates a new instance of MessageService.
func NewMessageService(mr repositories.MemberRepository, cr repositories.ChurchRepository, sender sms.Sender) MessageService {
	return &messageService{memberRepo: mr, churchRepo: cr, sender: sender}
}

// targetScope checks that the id matches the target type and lies within the caller's reach.
func (s *messageService) targetScope(ctx context.Context, caller models.AuthUser, req SendMessageRequest) (models.ScopeFilter, error) {
	var scope models.ScopeFilter
	switch {
	case req.TargetType == TargetChurch && req.ChurchID != "":
		scope = requestScope(req.ChurchID, "")
	case req.TargetType == TargetGroup && req.GroupID != "":
		scope = requestScope("", req.GroupID)
	default:
		return models.ScopeFilter{}, ErrMessageTarget
	}

	switch {
	case scope.MatchNone || caller.Status == models.StatusManager:
		return scope, nil
	case scope.ChurchID != nil:
		if _, err := scopedChurch(ctx, s.churchRepo, caller, scope.ChurchID); err != nil {
			return models.ScopeFilter{}, err
		}
	case !caller.Status.IsGroupLevel() || *scope.GroupID != caller.GroupID:
		return models.ScopeFilter{}, ErrChurchOutOfScope
	}
	return scope, nil
}

// SendMessages resolves the audience and hands delivery to the background.
// The caller only waits for the recipient lookup.
func (s *messageService) SendMessages(ctx context.Context, caller models.AuthUser, req SendMessageRequest) (*MessageReceipt, error) {
	criteria, ok := recipientCriteria[req.Category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrMessageTarget, req.Category)
	}
	scope, err := s.targetScope(ctx, caller, req)
	if err != nil {
		return nil, err
	}

	recipients, err := s.memberRepo.GetRecipients(ctx, scope, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	msg := sms.Message{Text: req.Message, Salutation: req.Salutation, AddNames: req.AddNames != nil && *req.AddNames}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.deliver(context.WithoutCancel(ctx), recipients, msg)
	}()

	return &MessageReceipt{RecipientCount: len(recipients)}, nil
}

// deliver sends in batches; a failed number is logged and never stops the rest.
func (s *messageService) deliver(ctx context.Context, recipients []models.Recipient, msg sms.Message) {
	failed := 0
	var mu sync.Mutex
	for start := 0; start < len(recipients); start += smsBatchSize {
		end := min(start+smsBatchSize, len(recipients))

		var g errgroup.Group
		for _, r := range recipients[start:end] {
			r := r // per-iteration copy; go.mod targets go1.21 loop semantics
			g.Go(func() error {
				personal := msg
				personal.FirstName = r.FirstName
				if err := s.sender.Send(ctx, r.PhoneNumber, sms.FormatMessage(personal)); err != nil {
					utils.LogWarn(err, "MessageService: sms not delivered", map[string]interface{}{"phone_number": r.PhoneNumber})
					mu.Lock()
					failed++
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()
		utils.LogDebug("MessageService: batch sent", map[string]interface{}{"from": start, "to": end})
	}

	utils.LogInfo("MessageService: bulk sms finished", map[string]interface{}{
		"recipients": len(recipients),
		"failed":     failed,
	})
}

func (s *messageService) Wait() {
	s.inflight.Wait()
}
