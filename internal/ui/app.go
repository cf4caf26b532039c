package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RunApp opens the board window and blocks until it is closed. A non-empty
// shareLink is shown so the host can pass it on.
func RunApp(board *BoardWidget, shareLink string) {
	myApp := app.New()
	myWindow := myApp.NewWindow("TileBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	top := NewToolbar(board, myWindow)
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		link.Disable()
		top = container.NewVBox(top, container.NewBorder(nil, nil, widget.NewLabel("Share:"), nil, link))
	}

	myWindow.SetContent(container.NewBorder(top, nil, nil, nil, board))
	myWindow.ShowAndRun()
}
