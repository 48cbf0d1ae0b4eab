package system

import (
	"time"

	"github.com/google/uuid"
)

// Clock is the wall-clock implementation of ports.Clock.
type Clock struct{}

func (Clock) Now() time.Time { return time.Now() }

// UUIDGenerator issues v4 UUIDs for transactions, shifts and sessions.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }
