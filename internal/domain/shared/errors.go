package shared

import "fmt"

// DomainError is the base error type for all local precondition failures.
// Remote rejections are reported by the API adapter, not here.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Ship-related errors

type ShipError struct {
	*DomainError
	ShipSymbol string
}

func NewShipError(shipSymbol, message string) *ShipError {
	return &ShipError{DomainError: &DomainError{Message: message}, ShipSymbol: shipSymbol}
}

type NoMiningCapabilityError struct {
	*ShipError
}

func NewNoMiningCapabilityError(shipSymbol string) *NoMiningCapabilityError {
	return &NoMiningCapabilityError{
		ShipError: NewShipError(shipSymbol, fmt.Sprintf("ship %s has no mining laser", shipSymbol)),
	}
}

type InvalidShipDataError struct {
	*ShipError
}

func NewInvalidShipDataError(shipSymbol, message string) *InvalidShipDataError {
	return &InvalidShipDataError{ShipError: NewShipError(shipSymbol, message)}
}

// Mission-related errors

type MissionError struct {
	*DomainError
	MissionID string
}

func NewMissionError(missionID, message string) *MissionError {
	return &MissionError{DomainError: &DomainError{Message: message}, MissionID: missionID}
}

type MissionNotAcceptedError struct {
	*MissionError
}

func NewMissionNotAcceptedError(missionID string) *MissionNotAcceptedError {
	return &MissionNotAcceptedError{
		MissionError: NewMissionError(missionID, fmt.Sprintf("mission %s has not been accepted", missionID)),
	}
}

type MissionClosedError struct {
	*MissionError
}

func NewMissionClosedError(missionID, reason string) *MissionClosedError {
	return &MissionClosedError{
		MissionError: NewMissionError(missionID, fmt.Sprintf("mission %s is closed: %s", missionID, reason)),
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
