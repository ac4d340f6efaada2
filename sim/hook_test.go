package sim

import (
	"bytes"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHook struct {
	ctxs []HookCtx
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

type namedDomain struct {
	HookableBase
	NamedBase
}

var _ = Describe("HookableBase", func() {
	var (
		domain *namedDomain
		pos    *HookPos
	)

	BeforeEach(func() {
		domain = &namedDomain{NamedBase: MakeNamedBase("Domain")}
		pos = &HookPos{Name: "Pos"}
	})

	It("should invoke hooks in registration order", func() {
		var order []string
		domain.AcceptHook(HookFunc(func(HookCtx) { order = append(order, "a") }))
		domain.AcceptHook(HookFunc(func(HookCtx) { order = append(order, "b") }))

		domain.InvokeHook(HookCtx{Domain: domain, Pos: pos})

		Expect(order).To(Equal([]string{"a", "b"}))
		Expect(domain.NumHooks()).To(Equal(2))
	})

	It("should pass the context through", func() {
		hook := &recordingHook{}
		domain.AcceptHook(hook)

		domain.InvokeHook(HookCtx{Domain: domain, Pos: pos, Item: 42})

		Expect(hook.ctxs).To(HaveLen(1))
		Expect(hook.ctxs[0].Item).To(Equal(42))
		Expect(hook.ctxs[0].Pos).To(BeIdenticalTo(pos))
	})

	It("should panic on duplicated hooks", func() {
		hook := &recordingHook{}
		domain.AcceptHook(hook)

		Expect(func() { domain.AcceptHook(hook) }).To(Panic())
	})

	It("should panic on an empty name", func() {
		Expect(func() { MakeNamedBase("") }).To(Panic())
	})
})

var _ = Describe("EventLogger", func() {
	It("should write one record per hook call", func() {
		buf := new(bytes.Buffer)
		logger := slog.New(slog.NewTextHandler(buf, nil))
		domain := &namedDomain{NamedBase: MakeNamedBase("MMU")}
		domain.AcceptHook(NewEventLogger(logger, slog.LevelInfo))

		domain.InvokeHook(HookCtx{
			Domain: domain,
			Pos:    &HookPos{Name: "PageFault"},
			Item:   7,
		})

		Expect(buf.String()).To(ContainSubstring("pos=PageFault"))
		Expect(buf.String()).To(ContainSubstring("where=MMU"))
		Expect(buf.String()).To(ContainSubstring("item=7"))
	})

	It("should stay silent below the handler level", func() {
		buf := new(bytes.Buffer)
		logger := slog.New(slog.NewTextHandler(buf,
			&slog.HandlerOptions{Level: slog.LevelWarn}))
		domain := &namedDomain{NamedBase: MakeNamedBase("MMU")}
		domain.AcceptHook(NewEventLogger(logger, slog.LevelDebug))

		domain.InvokeHook(HookCtx{Domain: domain, Pos: &HookPos{Name: "X"}})

		Expect(buf.Len()).To(BeZero())
	})
})

var _ = Describe("IDGenerator", func() {
	It("should generate increasing sequential ids", func() {
		g := NewSequentialIDGenerator()

		Expect(g.Generate()).To(Equal("1"))
		Expect(g.Generate()).To(Equal("2"))
	})

	It("should generate distinct unique ids", func() {
		g := uniqueIDGenerator{}

		Expect(g.Generate()).NotTo(Equal(g.Generate()))
	})
})
