package commands

import "gravity-sandbox/internal/logger"

// Console is the line-handling half of the terminal: it logs every submitted line and runs
// "cmd ..." lines through the registry. Anything else is only echoed with a hint.
type Console struct {
	Log      *logger.Logger
	Registry *Registry
}

// Submit handles one line typed by the user.
func (c *Console) Submit(line string) {
	if line == "" {
		return
	}
	c.Log.Log(line)
	args, isCmd := Parse(line)
	if !isCmd {
		c.Log.Log(`commands start with "cmd "; try cmd help`)
		return
	}
	if err := c.Registry.Execute(args); err != nil {
		c.Log.Log(err.Error())
	}
}
