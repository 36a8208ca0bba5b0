package service

import "github.com/stretchr/testify/mock"

type MockLoggerService struct {
	mock.Mock
}

func (m *MockLoggerService) Info(msg string) {
	m.Called(msg)
}

func (m *MockLoggerService) Warning(msg string) {
	m.Called(msg)
}

func (m *MockLoggerService) Exception(msg string) {
	m.Called(msg)
}

func (m *MockLoggerService) Debug(msg string) {
	m.Called(msg)
}

func (m *MockLoggerService) Shutdown() {}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
