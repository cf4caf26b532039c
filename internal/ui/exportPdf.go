package ui

import (
	"fmt"
	"log"

	"TileBoard/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// ShowExportDialog asks for a destination and writes the board there as PDF.
func ShowExportDialog(board *BoardWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("[EXPORT] Error closing writer: %v", err)
			}
		}()

		strokes := board.session.Strokes()
		if err := export.PDF(writer, strokes); err != nil {
			log.Printf("[EXPORT] %v", err)
			dialog.ShowError(err, win)
			return
		}
		board.SetStatus(fmt.Sprintf("Exported %d strokes to %s", len(strokes), writer.URI().Name()))
	}, win)
	d.SetFileName("board.pdf")
	d.Show()
}
