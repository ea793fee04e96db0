//go:build !linux

package uio

import (
	"github.com/brickingsoft/errors"
)

func New(_ []Operation, _ ...Option) (*Engine, error) {
	return nil, errUnsupported(errMetaOpSetup)
}

type Engine struct{}

func (engine *Engine) Close() error {
	return nil
}

func (engine *Engine) StartRecv(_ int, _ []byte, _ any) error {
	return errUnsupported(errMetaOpRecv)
}

func (engine *Engine) StartSend(_ int, _ []byte, _ any) error {
	return errUnsupported(errMetaOpSend)
}

func (engine *Engine) StartAccept(_ int, _ any) error {
	return errUnsupported(errMetaOpAccept)
}

func (engine *Engine) Wait() (Event, error) {
	return Event{}, errUnsupported(errMetaOpWait)
}

func errUnsupported(opName string) error {
	return errors.New(
		"uio: platform is not supported",
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, opName),
	)
}
