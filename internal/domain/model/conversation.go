package model

import "time"

// ConversationStep is the per-sender position in the only multi-message flow
// the bot has: pressing "Delete item" and then typing the target.
type ConversationStep string

const (
	StepIdle                 ConversationStep = "idle"
	StepAwaitingDeleteTarget ConversationStep = "awaiting_delete_target"
)

type ConversationState struct {
	Step      ConversationStep `json:"step"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func IdleState() *ConversationState {
	return &ConversationState{Step: StepIdle}
}

func AwaitingDeleteTarget() *ConversationState {
	return &ConversationState{Step: StepAwaitingDeleteTarget, UpdatedAt: time.Now().UTC()}
}

func (s *ConversationState) IsIdle() bool {
	return s == nil || s.Step == "" || s.Step == StepIdle
}

func (s *ConversationState) IsAwaitingDeleteTarget() bool {
	return s != nil && s.Step == StepAwaitingDeleteTarget
}
