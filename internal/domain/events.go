package domain

import (
	"context"
	"time"
)

type EventType string

const (
	EventItemCreated EventType = "item.created"
	EventItemDeleted EventType = "item.deleted"
	EventItemLiked   EventType = "item.liked"
	EventItemUnliked EventType = "item.unliked"
)

type ItemEvent struct {
	Type   EventType `json:"type"`
	ItemID string    `json:"itemId"`
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

// EventPublisher 物品变更事件出口；失败不影响主流程
type EventPublisher interface {
	Publish(ctx context.Context, ev ItemEvent) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ItemEvent) error { return nil }
