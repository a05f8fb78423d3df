package renderer

import "sync"

// nullRendererBackend is a RendererBackend that draws nothing.
// It keeps the last drawn frame and resource sizes so headless hosts and tests can observe them.
type nullRendererBackend struct {
	mu *sync.Mutex

	width, height            int
	distortionW, distortionH int
	hasDistortion            bool
	presentMode              PresentMode

	last   Frame
	frames int
}

var _ RendererBackend = &nullRendererBackend{}

func newNullRendererBackend() *nullRendererBackend {
	return &nullRendererBackend{mu: &sync.Mutex{}}
}

func (b *nullRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *nullRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *nullRendererBackend) CreateDistortionTarget(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.distortionW, b.distortionH = width, height
	b.hasDistortion = true
	return nil
}

func (b *nullRendererBackend) ReleaseDistortionTarget() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.distortionW, b.distortionH = 0, 0
	b.hasDistortion = false
}

func (b *nullRendererBackend) BeginFrame() error {
	return nil
}

func (b *nullRendererBackend) DrawFrame(frame Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	frame.Commands = append([]DrawCommand(nil), frame.Commands...)
	b.last = frame
}

func (b *nullRendererBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames++
}

func (b *nullRendererBackend) Present() {}

func (b *nullRendererBackend) Release() {
	b.ReleaseDistortionTarget()
}
