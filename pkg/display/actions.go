package display

import (
	"fmt"

	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/emulator"
	"github.com/thelolagemann/pixel8/pkg/utils"
)

// Action is a host control that a driver binds to a key or button.
type Action int

const (
	// ActionTogglePause pauses or resumes the emulator.
	ActionTogglePause Action = iota
	// ActionStep executes a single instruction while paused.
	ActionStep
	// ActionReset restarts the current ROM.
	ActionReset
	// ActionCyclePalette selects the next palette.
	ActionCyclePalette
	// ActionSaveState writes a save state to StatePath.
	ActionSaveState
	// ActionLoadState restores the save state at StatePath.
	ActionLoadState
	// ActionScreenshot asks where to save the last frame as a PNG.
	ActionScreenshot
	// ActionCopyScreenshot copies the last frame to the clipboard.
	ActionCopyScreenshot
	// ActionQuit closes the emulator.
	ActionQuit
)

// StatePath is the file save states are written to and read from.
var StatePath = "pixel8" + emulator.StateExtension

// ScreenshotScale is the factor screenshots are scaled up by.
var ScreenshotScale = 8

// Perform carries out action against emu. frame is the last frame
// the driver presented, used for screenshots, and may be nil.
func Perform(emu Emulator, action Action, frame []byte) error {
	switch action {
	case ActionTogglePause:
		TogglePause(emu)
	case ActionStep:
		return emu.SendCommand(Step).Error
	case ActionReset:
		return emu.SendCommand(Reset).Error
	case ActionCyclePalette:
		return emu.SendCommand(CyclePalette).Error
	case ActionSaveState:
		resp := emu.SendCommand(emulator.CommandPacket{Command: emulator.CommandSaveState})
		if resp.Error != nil {
			return resp.Error
		}
		return emulator.WriteState(StatePath, resp.Data)
	case ActionLoadState:
		b, err := emulator.ReadState(StatePath)
		if err != nil {
			return err
		}
		return emu.SendCommand(emulator.CommandPacket{Command: emulator.CommandLoadState, Data: b}).Error
	case ActionScreenshot, ActionCopyScreenshot:
		if frame == nil {
			return fmt.Errorf("screenshot: no frame presented yet")
		}
		img := utils.ScaleImage(utils.FrameToImage(frame, types.ScreenWidth, types.ScreenHeight), ScreenshotScale)
		if action == ActionCopyScreenshot {
			return utils.CopyImage(img)
		}
		return utils.SaveImage(img)
	case ActionQuit:
		return emu.SendCommand(Close).Error
	default:
		return fmt.Errorf("unknown action %d", action)
	}
	return nil
}
