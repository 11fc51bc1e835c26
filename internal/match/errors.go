package match

import "errors"

var (
	ErrRoomNotFound       = errors.New("room_not_found")
	ErrRoomNotJoinable    = errors.New("room_not_joinable")
	ErrParticipantUnknown = errors.New("participant_unknown")
	ErrInvalidStake       = errors.New("invalid_stake")
)
