package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jac241/pview/model"
	"github.com/jac241/pview/session"
	"github.com/jac241/pview/viewer"
)

// infoProvider is satisfied by sources that carry file-level metadata,
// both locally opened tables and remote clients.
type infoProvider interface {
	Info() model.Info
}

// valueCounter is satisfied by sources that can compute a frequency table
// themselves, so a remote dataset is not dragged over the wire to count it.
type valueCounter interface {
	ValueCounts(index int) (viewer.ValueCounts, error)
}

// ViewerApp is the TUI for paging through one table at a time.
type ViewerApp struct {
	tviewApp   *tview.Application
	pages      *tview.Pages
	mainLayout *tview.Flex
	headerView *tview.TextView
	columnList *tview.List
	dataTable  *tview.Table
	statusLine *tview.TextView

	controller *viewer.Controller
	store      *session.Store
	state      session.State
	watcher    *session.Watcher

	lastHeaders []string
}

// NewViewerApp creates a viewer that opens files through open.
func NewViewerApp(open viewer.OpenFunc, pageSize int64, store *session.Store) *ViewerApp {
	return &ViewerApp{
		tviewApp:   tview.NewApplication(),
		pages:      tview.NewPages(),
		controller: viewer.NewController(open, pageSize),
		store:      store,
	}
}

// Run builds the UI, opens the initial file if given and blocks until the
// user quits.
func (app *ViewerApp) Run(initial string) error {
	app.state = app.store.Load()
	app.buildLayout()
	app.pages.AddPage("main", app.mainLayout, true, true)
	app.tviewApp.SetRoot(app.pages, true)

	if initial != "" {
		app.openFile(initial)
	} else {
		app.applyRender(app.controller.Refresh())
	}

	err := app.tviewApp.Run()
	app.shutdown()
	return err
}

func (app *ViewerApp) buildLayout() {
	app.headerView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	app.headerView.SetBorder(true).
		SetTitle(" File Info ").
		SetTitleAlign(tview.AlignLeft)

	app.columnList = tview.NewList().
		ShowSecondaryText(false)
	app.columnList.SetBorder(true).
		SetTitle(" Columns (Enter=move to front) ").
		SetTitleAlign(tview.AlignLeft)
	app.columnList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		app.applyRender(app.controller.SelectColumn(index))
	})

	app.dataTable = tview.NewTable().
		SetBorders(false).
		SetSeparator(tview.Borders.Vertical).
		SetSelectable(true, true).
		SetFixed(1, 1)
	app.dataTable.SetBorder(true).
		SetTitle(" Rows (↑↓ to navigate) ").
		SetTitleAlign(tview.AlignLeft)

	app.statusLine = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	middle := tview.NewFlex().
		AddItem(app.columnList, 32, 0, false).
		AddItem(app.dataTable, 0, 1, true)

	app.mainLayout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.headerView, 4, 0, false).
		AddItem(middle, 0, 1, true).
		AddItem(app.statusLine, 1, 0, false)

	app.mainLayout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			app.tviewApp.Stop()
			return nil
		case tcell.KeyTab:
			if app.tviewApp.GetFocus() == app.columnList {
				app.tviewApp.SetFocus(app.dataTable)
			} else {
				app.tviewApp.SetFocus(app.columnList)
			}
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'n':
				app.applyRender(app.controller.Next())
				return nil
			case 'p':
				app.applyRender(app.controller.Previous())
				return nil
			case 'o':
				app.showOpenForm()
				return nil
			case 'v':
				app.showValueCounts()
				return nil
			case 'r':
				app.reload()
				return nil
			case 'c':
				app.copySelectedCell()
				return nil
			case 'R':
				app.reopenLast()
				return nil
			}
		}
		return event
	})
}

// openFile swaps the viewed dataset, closing the one it replaces, and
// records the open in the session.
func (app *ViewerApp) openFile(path string) {
	old := app.controller.Source()
	r := app.controller.OpenFile(path)
	if closer, ok := old.(io.Closer); ok {
		_ = closer.Close()
	}

	if app.controller.Loaded() {
		app.state.Touch(path)
		_ = app.store.Save(app.state)
		app.watch(path)
	} else {
		app.stopWatcher()
	}

	app.applyRender(r)
}

// reload reopens the current file, keeping the page position.
func (app *ViewerApp) reload() {
	if !app.controller.Loaded() {
		return
	}
	path := app.controller.Path()
	offset := app.controller.Offset()
	app.openFile(path)
	if app.controller.Loaded() {
		app.applyRender(app.controller.RestoreOffset(offset))
	}
}

// reopenLast restores the previous session: same file, same page.
func (app *ViewerApp) reopenLast() {
	if app.state.LastFile == "" {
		return
	}
	path := app.state.LastFile
	offset := app.state.LastOffset
	app.openFile(path)
	if app.controller.Loaded() {
		app.applyRender(app.controller.RestoreOffset(offset))
		app.state.RememberOffset(offset)
	}
}

func (app *ViewerApp) applyRender(r viewer.Render) {
	if !slices.Equal(app.lastHeaders, r.Headers) {
		app.updateColumnList(r.Headers)
		app.lastHeaders = append([]string(nil), r.Headers...)
	}
	app.renderTable(r)
	app.updateHeaderView()
	app.setStatus(r.Status, r.Error)
}

func (app *ViewerApp) updateColumnList(headers []string) {
	app.columnList.Clear()
	for _, name := range headers {
		app.columnList.AddItem(name, "", 0, nil)
	}
}

func (app *ViewerApp) renderTable(r viewer.Render) {
	app.dataTable.Clear()

	app.dataTable.SetCell(0, 0, tview.NewTableCell("#").
		SetTextColor(tcell.ColorYellow).
		SetAlign(tview.AlignRight).
		SetSelectable(false))
	for colIdx, name := range r.Headers {
		cell := tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignCenter).
			SetSelectable(false).
			SetExpansion(1)
		app.dataTable.SetCell(0, colIdx+1, cell)
	}

	base := app.controller.Offset()
	for rowIdx, row := range r.Rows {
		numCell := tview.NewTableCell(fmt.Sprintf("%d", base+int64(rowIdx)+1)).
			SetTextColor(tcell.ColorGray).
			SetAlign(tview.AlignRight).
			SetSelectable(false)
		app.dataTable.SetCell(rowIdx+1, 0, numCell)

		for colIdx, val := range row {
			cell := tview.NewTableCell(val).
				SetTextColor(tcell.ColorWhite).
				SetAlign(tview.AlignLeft)
			app.dataTable.SetCell(rowIdx+1, colIdx+1, cell)
		}
	}
	app.dataTable.ScrollToBeginning()
}

func (app *ViewerApp) updateHeaderView() {
	var header strings.Builder

	if !app.controller.Loaded() {
		header.WriteString("[yellow]File:[-] (none)  press o to open a file")
	} else {
		header.WriteString(fmt.Sprintf("[yellow]File:[-] %s", filepath.Base(app.controller.Path())))
		if ip, ok := app.controller.Source().(infoProvider); ok {
			info := ip.Info()
			header.WriteString(fmt.Sprintf("\n[yellow]Rows:[-] %s  [yellow]Columns:[-] %d  [yellow]Size:[-] %s",
				humanize.Comma(info.NumRows),
				info.NumColumns,
				humanize.IBytes(uint64(info.FileSize))))
			if info.CreatedBy != "" {
				header.WriteString(fmt.Sprintf("  [yellow]Created By:[-] %s", info.CreatedBy))
			}
		}
	}

	app.headerView.SetText(header.String())
	app.mainLayout.ResizeItem(app.headerView, app.getHeaderHeight(), 0)
}

func (app *ViewerApp) getHeaderHeight() int {
	if app.headerView == nil {
		return 3
	}
	text := app.headerView.GetText(false)
	lines := strings.Count(text, "\n") + 1
	return lines + 2 // +2 for borders
}

func (app *ViewerApp) setStatus(status, errMsg string) {
	text := " " + status
	if errMsg != "" {
		text += fmt.Sprintf("  [red]%s[-]", errMsg)
	}
	text += "  [yellow]Keys:[-] n=next, p=prev, o=open, v=values, c=copy, r=reload, R=resume, ESC=quit"
	app.statusLine.SetText(text)
}

// showOpenForm prompts for a path, offering the recent files as shortcuts.
func (app *ViewerApp) showOpenForm() {
	input := tview.NewInputField().
		SetLabel("Path").
		SetFieldWidth(60)
	if app.state.LastDirectory != "" {
		input.SetText(app.state.LastDirectory + string(filepath.Separator))
	}

	form := tview.NewForm().AddFormItem(input)
	if len(app.state.RecentFiles) > 0 {
		form.AddDropDown("Recent", app.state.RecentFiles, -1, func(option string, index int) {
			if index >= 0 {
				input.SetText(option)
			}
		})
	}
	form.AddButton("Open", func() {
		path := strings.TrimSpace(input.GetText())
		app.pages.RemovePage("open")
		if path != "" {
			app.openFile(path)
		}
	})
	form.AddButton("Cancel", func() {
		app.pages.RemovePage("open")
	})
	form.SetCancelFunc(func() {
		app.pages.RemovePage("open")
	})
	form.SetBorder(true).
		SetTitle(" Open File ").
		SetTitleAlign(tview.AlignLeft)

	app.pages.AddPage("open", centered(form, 76, 11), true, true)
}

// showValueCounts scans the selected column in the background and shows
// its frequency table. The scan walks the whole dataset, so it gets a
// loading modal with cancellation the same way slow views do elsewhere.
func (app *ViewerApp) showValueCounts() {
	if !app.controller.Loaded() {
		return
	}
	headers := app.controller.Columns()
	index := app.columnList.GetCurrentItem()
	if index < 0 || index >= len(headers) {
		return
	}
	column := headers[index]

	loadingModal := tview.NewModal().
		SetText(fmt.Sprintf("Counting values...\n\nColumn: %s\n\nPlease wait...", column)).
		SetTextColor(tcell.ColorYellow)
	app.pages.AddPage("counts-loading", loadingModal, true, true)

	go func() {
		counts, err := app.countValues(column)

		app.tviewApp.QueueUpdateDraw(func() {
			app.pages.RemovePage("counts-loading")
			if err != nil {
				app.setStatus(app.controller.Refresh().Status, err.Error())
				return
			}
			app.showValueCountsPage(counts)
		})
	}()
}

// countValues prefers the source's own counting (the API server computes
// it in one request) and falls back to scanning through the controller.
func (app *ViewerApp) countValues(column string) (viewer.ValueCounts, error) {
	src := app.controller.Source()
	if vc, ok := src.(valueCounter); ok {
		if idx := slices.Index(src.Columns(), column); idx >= 0 {
			return vc.ValueCounts(idx)
		}
	}
	return app.controller.ValueCounts(column)
}

func (app *ViewerApp) showValueCountsPage(counts viewer.ValueCounts) {
	table := tview.NewTable().
		SetBorders(false).
		SetSeparator(tview.Borders.Vertical).
		SetSelectable(true, false).
		SetFixed(1, 0)
	table.SetBorder(true).
		SetTitle(fmt.Sprintf(" Value Counts: %s (%s values, ESC=back) ",
			counts.Column, humanize.Comma(counts.Total))).
		SetTitleAlign(tview.AlignLeft)

	headers := []string{"Value", "Count", "%"}
	for colIdx, name := range headers {
		cell := tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignCenter).
			SetSelectable(false)
		if colIdx == 0 {
			cell.SetExpansion(1)
		}
		table.SetCell(0, colIdx, cell)
	}

	for rowIdx, vc := range counts.Counts {
		table.SetCell(rowIdx+1, 0, tview.NewTableCell(vc.Value).
			SetTextColor(tcell.ColorWhite).
			SetAlign(tview.AlignLeft).
			SetExpansion(1))
		table.SetCell(rowIdx+1, 1, tview.NewTableCell(humanize.Comma(vc.Count)).
			SetTextColor(tcell.ColorWhite).
			SetAlign(tview.AlignRight))
		table.SetCell(rowIdx+1, 2, tview.NewTableCell(fmt.Sprintf("%.2f%%", vc.Percent)).
			SetTextColor(tcell.ColorWhite).
			SetAlign(tview.AlignRight))
	}

	table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			app.pages.RemovePage("valuecounts")
			return nil
		}
		return event
	})

	app.pages.AddPage("valuecounts", table, true, true)
}

func (app *ViewerApp) copySelectedCell() {
	row, col := app.dataTable.GetSelection()
	if row < 1 || col < 1 {
		return
	}
	cell := app.dataTable.GetCell(row, col)
	if cell == nil {
		return
	}
	if err := clipboard.WriteAll(cell.Text); err != nil {
		app.setStatus(app.controller.Refresh().Status, fmt.Sprintf("copy failed: %v", err))
		return
	}
	app.setStatus("Copied cell to clipboard.", "")
}

// watch restarts the file watcher for a newly opened local file. Remote
// URIs are not watchable.
func (app *ViewerApp) watch(path string) {
	app.stopWatcher()
	if strings.Contains(path, "://") {
		return
	}
	w, err := session.Watch(path)
	if err != nil {
		return
	}
	app.watcher = w

	go func() {
		for range w.Changes() {
			app.tviewApp.QueueUpdateDraw(app.promptReload)
		}
	}()
}

func (app *ViewerApp) stopWatcher() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
}

func (app *ViewerApp) promptReload() {
	if app.pages.HasPage("reload-prompt") {
		return
	}
	modal := tview.NewModal().
		SetText("The file changed on disk.\n\nReload it?").
		AddButtons([]string{"Reload", "Ignore"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			app.pages.RemovePage("reload-prompt")
			if buttonLabel == "Reload" {
				app.reload()
			}
		})
	app.pages.AddPage("reload-prompt", modal, true, true)
}

func (app *ViewerApp) shutdown() {
	app.stopWatcher()
	if app.controller.Loaded() {
		app.state.RememberOffset(app.controller.Offset())
		_ = app.store.Save(app.state)
		if closer, ok := app.controller.Source().(io.Closer); ok {
			_ = closer.Close()
		}
	}
}

// centered wraps a primitive in a flex so it floats over the main view.
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
