package app

import (
	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a member whose send queue is full.
type Policy interface {
	OnBackPressure(room domain.SessionID, member core.MemberSession) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.SessionID, core.MemberSession) BackpressureAction {
	return KickMember
}

type TolerantPolicy struct{}

func (TolerantPolicy) OnBackPressure(domain.SessionID, core.MemberSession) BackpressureAction {
	return NoAction
}

// Authorizer is the capability check applied before relaying or ending a session.
type Authorizer interface {
	CanRelay(s domain.Session, caller domain.UserID) bool
	CanEnd(s domain.Session, caller domain.UserID) bool
}

// MembershipAuthorizer lets owners and viewers relay and only owners end.
type MembershipAuthorizer struct{}

func (MembershipAuthorizer) CanRelay(s domain.Session, caller domain.UserID) bool {
	return s.IsOwner(caller) || (caller != "" && s.HasViewer(caller))
}

func (MembershipAuthorizer) CanEnd(s domain.Session, caller domain.UserID) bool {
	return s.IsOwner(caller)
}

// AllowAll reproduces the unauthenticated behavior of the socket handlers.
type AllowAll struct{}

func (AllowAll) CanRelay(domain.Session, domain.UserID) bool { return true }
func (AllowAll) CanEnd(domain.Session, domain.UserID) bool   { return true }
