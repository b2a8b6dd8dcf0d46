package bot

import "errors"

var (
	errNotGameMaster      = errors.New("you are not the game master")
	errPlayerDoesNotExist = errors.New("player doesn't exist")
	errAlreadyJoined      = errors.New("player already joined")
	errNoHallOfFame       = errors.New("hall of fame unavailable")
)
