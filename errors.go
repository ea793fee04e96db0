package uio

import (
	"github.com/brickingsoft/errors"
)

var (
	ErrOperationsExhausted  = errors.Define("no free operation slot")
	ErrSubmissionQueueFull  = errors.Define("submission queue is full")
	ErrUnexpectedCompletion = errors.Define("unexpected completion")
)

func IsOperationsExhausted(err error) bool {
	return errors.Is(err, ErrOperationsExhausted)
}

func IsSubmissionQueueFull(err error) bool {
	return errors.Is(err, ErrSubmissionQueueFull)
}

func IsUnexpectedCompletion(err error) bool {
	return errors.Is(err, ErrUnexpectedCompletion)
}

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "uio"
)

const (
	errMetaOpKey    = "op"
	errMetaOpSetup  = "setup"
	errMetaOpRecv   = "receive"
	errMetaOpSend   = "send"
	errMetaOpAccept = "accept"
	errMetaOpWait   = "wait"
)
