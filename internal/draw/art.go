package draw

// ASCII art titles (figlet "small" font)
var (
	TitleArt = []string{
		`  ___ _  _   _   _  _____ `,
		` / __| \| | /_\ | |/ / __|`,
		` \__ \ .' |/ _ \| ' <| _| `,
		` |___/_|\_/_/ \_\_|\_\___|`,
	}
	GameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
)

// Controls lists the key bindings shown on title screens.
var Controls = []string{
	"Arrows / WASD . . Steer",
	"SPACE . . . . . . Pause",
	"Q . . . . . . . .  Quit",
}
