package window

import (
	"context"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	ebimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	log "github.com/echocat/slf4g"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"

	"github.com/blaubaer/audio-switcher/pkg/audio"
	"github.com/blaubaer/audio-switcher/pkg/frontend"
)

const titleBarHeight = 32

// Window is the floating always-on-top control window. It owns the main
// thread while running, like every other frontend.
type Window struct {
	conf *Configuration
	ctrl frontend.Controller

	eui *ebitenui.UI

	deviceList    *widget.List
	volumeSlider  *widget.Slider
	volumeLabel   *widget.Text
	muteToggle    *widget.Button
	sessionsLabel *widget.Text

	devices      audio.Devices
	lastRevision uint64
	applying     bool
	quit         bool

	dragging     bool
	dragX, dragY int

	runCtx context.Context
}

func (this *Window) Initialize(conf *Configuration, ctrl frontend.Controller) error {
	this.conf = conf
	this.ctrl = ctrl

	titleFace, err := font(18)
	if err != nil {
		return err
	}
	mainFace, err := font(15)
	if err != nil {
		return err
	}
	smallFace, err := font(12)
	if err != nil {
		return err
	}

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(ebimage.NewNineSliceColor(colorBackground)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, true, false, false}),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.GridLayoutOpts.Spacing(0, 8),
		)),
	)

	root.AddChild(this.makeTitleBar(titleFace))
	root.AddChild(this.makeDeviceList(mainFace))
	root.AddChild(this.makeVolumeRow(mainFace))

	this.sessionsLabel = widget.NewText(
		widget.TextOpts.Text("", smallFace, colornames.Gray),
	)
	root.AddChild(this.sessionsLabel)

	this.eui = &ebitenui.UI{Container: root}
	return nil
}

func (this *Window) makeTitleBar(face *text.Face) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(ebimage.NewNineSliceColor(colorPanel)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(4)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, titleBarHeight),
		),
	)

	bar.AddChild(widget.NewText(
		widget.TextOpts.Text("Audio Switcher", face, color.NRGBA{0xee, 0xee, 0xee, 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Stretch: true,
		})),
	))

	bar.AddChild(makeButton(face, "R", func(*widget.ButtonClickedEventArgs) {
		if _, err := this.ctrl.Refresh(); err != nil {
			log.WithError(err).
				Error("Cannot refresh devices.")
		}
	}))
	bar.AddChild(makeButton(face, "_", func(*widget.ButtonClickedEventArgs) {
		ebiten.MinimizeWindow()
	}))
	bar.AddChild(makeButton(face, "X", func(*widget.ButtonClickedEventArgs) {
		this.quit = true
	}))

	return bar
}

func (this *Window) makeDeviceList(face *text.Face) *widget.List {
	this.deviceList = makeList(face,
		func(e any) string {
			if device, ok := e.(*audio.Device); ok {
				return device.Name
			}
			return "<unknown>"
		},
		func(args *widget.ListEntrySelectedEventArgs) {
			if this.applying || args.Entry == args.PreviousEntry {
				return
			}
			device, ok := args.Entry.(*audio.Device)
			if !ok {
				return
			}
			if err := this.ctrl.SetDefaultDevice(device.ID); err != nil {
				log.WithError(err).
					With("device", device).
					Error("Cannot switch default device.")
			}
		},
	)
	return this.deviceList
}

func (this *Window) makeVolumeRow(face *text.Face) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(ebimage.NewNineSliceColor(colorPanel)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
		)),
	)

	this.muteToggle = makeToggleButton(face, "Mute", func(args *widget.ButtonChangedEventArgs) {
		// OffsetX is -1 for programmatic SetState calls.
		if this.applying || args.OffsetX == -1 {
			return
		}
		if err := this.ctrl.SetMuted(args.State == widget.WidgetChecked); err != nil {
			log.WithError(err).
				Error("Cannot change mute state.")
		}
	})
	row.AddChild(this.muteToggle)

	this.volumeSlider = makeSlider(0, 100, 50, func(percent int) {
		if this.applying {
			return
		}
		v := audio.Volume(float64(percent) / 100)
		this.volumeLabel.Label = v.String()
		if err := this.ctrl.SetVolume(v); err != nil {
			log.WithError(err).
				With("volume", v).
				Error("Cannot change volume.")
		}
	})
	row.AddChild(this.volumeSlider)

	this.volumeLabel = widget.NewText(
		widget.TextOpts.Text("0%", face, colornames.White),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(48, 0),
		),
	)
	row.AddChild(this.volumeLabel)

	return row
}

func (this *Window) Run(ctx context.Context) error {
	this.runCtx = ctx

	ebiten.SetTPS(this.conf.FPS)
	ebiten.SetWindowSize(this.conf.Width, this.conf.Height)
	ebiten.SetWindowSizeLimits(240, 160, -1, -1)
	ebiten.SetWindowTitle("Audio Switcher")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(this.conf.Floating)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(this); err != nil {
		return fmt.Errorf("window loop failed: %w", err)
	}
	return nil
}

func (this *Window) Dispose() error {
	return nil
}

func (this *Window) GetType() frontend.Type {
	return frontend.TypeWindow
}

func (this *Window) Update() error {
	if this.quit || this.runCtx.Err() != nil {
		return ebiten.Termination
	}

	this.handleDragging()
	this.syncFromSnapshot()
	this.eui.Update()
	return nil
}

func (this *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	this.eui.Draw(screen)
}

func (this *Window) Layout(width, height int) (int, int) {
	return width, height
}

// handleDragging moves the undecorated window along with the cursor while
// the left button is held down on the free area of the title bar.
func (this *Window) handleDragging() {
	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		width, _ := ebiten.WindowSize()
		// The right end of the bar is occupied by buttons.
		if y >= 0 && y < titleBarHeight && x >= 0 && x < width-120 {
			this.dragging = true
			this.dragX, this.dragY = x, y
		}
	}

	if this.dragging {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			this.dragging = false
			return
		}
		wx, wy := ebiten.WindowPosition()
		ebiten.SetWindowPosition(wx+x-this.dragX, wy+y-this.dragY)
	}
}

// syncFromSnapshot pulls externally observed changes into the widgets. It
// never does so while the user is interacting, guarded by applying so that
// programmatic widget updates do not bounce back as user actions.
func (this *Window) syncFromSnapshot() {
	snapshot := this.ctrl.Snapshot()
	if snapshot.Revision == this.lastRevision {
		return
	}
	this.lastRevision = snapshot.Revision

	this.applying = true
	defer func() { this.applying = false }()

	this.devices = snapshot.Devices
	entries := make([]any, len(this.devices))
	for i := range this.devices {
		entries[i] = &this.devices[i]
	}
	this.deviceList.SetEntries(entries)
	if defaultDevice, ok := snapshot.Default(); ok {
		for i := range this.devices {
			if this.devices[i].ID == defaultDevice.ID {
				this.deviceList.SetSelectedEntry(&this.devices[i])
				break
			}
		}
	}

	this.volumeSlider.Current = snapshot.Volume.Percent()
	if snapshot.Muted {
		this.volumeLabel.Label = snapshot.Volume.String() + " muted"
		this.muteToggle.SetState(widget.WidgetChecked)
	} else {
		this.volumeLabel.Label = snapshot.Volume.String()
		this.muteToggle.SetState(widget.WidgetUnchecked)
	}

	if defaultDevice, ok := snapshot.Default(); ok && defaultDevice.Sessions.HasContent() {
		this.sessionsLabel.Label = "Playing: " + defaultDevice.Sessions.String()
	} else {
		this.sessionsLabel.Label = ""
	}
}
