// telegram_client_mock.go
package main

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/mock"
)

// MockTelegramClient is a mock implementation of TelegramClient for testing.
type MockTelegramClient struct {
	mock.Mock
	SendMessageFunc    func(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhotoFunc      func(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendVideoFunc      func(ctx context.Context, params *bot.SendVideoParams) (*models.Message, error)
	SendDocumentFunc   func(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
	SendMediaGroupFunc func(ctx context.Context, params *bot.SendMediaGroupParams) ([]*models.Message, error)
	StartFunc          func(ctx context.Context)
}

func (m *MockTelegramClient) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*models.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTelegramClient) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	if m.SendPhotoFunc != nil {
		return m.SendPhotoFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*models.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTelegramClient) SendVideo(ctx context.Context, params *bot.SendVideoParams) (*models.Message, error) {
	if m.SendVideoFunc != nil {
		return m.SendVideoFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*models.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTelegramClient) SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error) {
	if m.SendDocumentFunc != nil {
		return m.SendDocumentFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*models.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTelegramClient) SendMediaGroup(ctx context.Context, params *bot.SendMediaGroupParams) ([]*models.Message, error) {
	if m.SendMediaGroupFunc != nil {
		return m.SendMediaGroupFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msgs, ok := args.Get(0).([]*models.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTelegramClient) Start(ctx context.Context) {
	if m.StartFunc != nil {
		m.StartFunc(ctx)
		return
	}
	m.Called(ctx)
}
