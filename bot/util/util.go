package util

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

const channelFile = "current_channel.txt"

func GetChannelID() (string, error) {
	return readFile(channelFile)
}

func readFile(fileName string) (string, error) {
	file, err := os.Open(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		// False on error or EOF
		return "", scanner.Err()
	}

	return strings.TrimSpace(scanner.Text()), nil
}

// Mention formats a discord user id as a mention
func Mention(discordID string) string {
	return "<@" + discordID + ">"
}

// ParseDiscordID converts a discord snowflake to the numeric form used for the game master check
func ParseDiscordID(discordID string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(discordID), 10, 64)
	return uint(id), err
}

func SetAdventureChannel(channelID string) error {
	return os.WriteFile(channelFile, []byte(channelID), 0o666)
}

// HPBar draws a text gauge of width cells for a percentage in [0, 100]
func HPBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
