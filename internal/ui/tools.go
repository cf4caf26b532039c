package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar builds the tool strip shown above the board.
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	toolLabel := widget.NewLabel("Pen")
	setTool := func(t Tool, name string) func() {
		return func() {
			board.SetTool(t)
			toolLabel.SetText(name)
		}
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), setTool(ToolPen, "Pen")),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), setTool(ToolEraser, "Eraser")),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearAll),
		widget.NewToolbarAction(theme.GridIcon(), board.ToggleGrid),
		widget.NewToolbarAction(theme.HomeIcon(), board.ResetView),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { ShowExportDialog(board, win) }),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolLabel,
		tb,
		layout.NewSpacer(),
		board.statusBar,
	)
}
