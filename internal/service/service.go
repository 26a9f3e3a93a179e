// Package service - сервисы магазина: одна операция - один HTTP вызов.
package service

import (
	"context"
)

// Transport - то, что сервисам нужно от API клиента
type Transport interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}
