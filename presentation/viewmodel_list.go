package presentation

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var (
	persistentColor = color.RGBA{0, 200, 0, 255}
	transientColor  = color.RGBA{128, 128, 128, 255}
)

// ViewModelListItem represents a single row in the view-model list.
type ViewModelListItem struct {
	Identifier string
	Kind       string
	Persistent bool
}

// ViewModelList is a scrollable list of the view-models in a session
// context. Green rows are included in snapshots.
type ViewModelList struct {
	widget.List
	items      []*ViewModelListItem
	itemsMu    sync.RWMutex
	onSelected func(identifier string)
}

// NewViewModelList creates a new view-model list widget.
func NewViewModelList(onSelected func(identifier string)) *ViewModelList {
	vl := &ViewModelList{
		items:      make([]*ViewModelListItem, 0),
		onSelected: onSelected,
	}

	vl.List = widget.List{
		Length: func() int {
			vl.itemsMu.RLock()
			defer vl.itemsMu.RUnlock()
			return len(vl.items)
		},
		CreateItem: func() fyne.CanvasObject {
			return vl.createItem()
		},
		UpdateItem: func(id widget.ListItemID, item fyne.CanvasObject) {
			vl.updateItem(id, item)
		},
	}

	vl.List.OnSelected = func(id widget.ListItemID) {
		if identifier := vl.IdentifierAt(id); identifier != "" && vl.onSelected != nil {
			vl.onSelected(identifier)
		}
	}

	vl.ExtendBaseWidget(vl)
	return vl
}

func (vl *ViewModelList) createItem() fyne.CanvasObject {
	indicator := canvas.NewCircle(transientColor)
	indicator.Resize(fyne.NewSize(12, 12))

	identifier := widget.NewLabel("identifier")
	identifier.TextStyle = fyne.TextStyle{Bold: true}
	kind := widget.NewLabel("kind")

	row := container.NewHBox(
		container.NewCenter(container.NewGridWrap(fyne.NewSize(20, 20), indicator)),
		identifier,
		kind,
	)

	return container.NewPadded(row)
}

func (vl *ViewModelList) updateItem(id widget.ListItemID, item fyne.CanvasObject) {
	vl.itemsMu.RLock()
	defer vl.itemsMu.RUnlock()

	if id >= len(vl.items) {
		return
	}
	data := vl.items[id]

	paddedContainer := item.(*fyne.Container)
	hbox := paddedContainer.Objects[0].(*fyne.Container)

	indicatorContainer := hbox.Objects[0].(*fyne.Container)
	gridWrap := indicatorContainer.Objects[0].(*fyne.Container)
	indicator := gridWrap.Objects[0].(*canvas.Circle)
	if data.Persistent {
		indicator.FillColor = persistentColor
	} else {
		indicator.FillColor = transientColor
	}
	indicator.Refresh()

	hbox.Objects[1].(*widget.Label).SetText(data.Identifier)
	hbox.Objects[2].(*widget.Label).SetText(data.Kind)
}

// Add appends a view-model row. Identifiers already listed are ignored.
func (vl *ViewModelList) Add(item ViewModelListItem) {
	vl.itemsMu.Lock()
	for _, existing := range vl.items {
		if existing.Identifier == item.Identifier {
			vl.itemsMu.Unlock()
			return
		}
	}
	vl.items = append(vl.items, &item)
	vl.itemsMu.Unlock()

	vl.Refresh()
}

// Remove drops the row for identifier.
func (vl *ViewModelList) Remove(identifier string) {
	vl.itemsMu.Lock()
	for i, item := range vl.items {
		if item.Identifier == identifier {
			vl.items = append(vl.items[:i], vl.items[i+1:]...)
			break
		}
	}
	vl.itemsMu.Unlock()

	vl.Refresh()
}

// Count returns the number of rows.
func (vl *ViewModelList) Count() int {
	vl.itemsMu.RLock()
	defer vl.itemsMu.RUnlock()
	return len(vl.items)
}

// IndexOf returns the row index of identifier, or -1 if not found.
func (vl *ViewModelList) IndexOf(identifier string) int {
	vl.itemsMu.RLock()
	defer vl.itemsMu.RUnlock()
	for i, item := range vl.items {
		if item.Identifier == identifier {
			return i
		}
	}
	return -1
}

// IdentifierAt returns the identifier at index, or empty string if out of bounds.
func (vl *ViewModelList) IdentifierAt(index int) string {
	vl.itemsMu.RLock()
	defer vl.itemsMu.RUnlock()
	if index < 0 || index >= len(vl.items) {
		return ""
	}
	return vl.items[index].Identifier
}

// SelectIdentifier programmatically selects the row for identifier.
func (vl *ViewModelList) SelectIdentifier(identifier string) {
	if i := vl.IndexOf(identifier); i >= 0 {
		// Unselect first so OnSelected fires even for the current row.
		vl.UnselectAll()
		vl.Select(i)
	}
}
