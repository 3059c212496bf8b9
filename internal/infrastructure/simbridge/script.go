package simbridge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grafana/sobek"

	"github.com/bnema/guestview/internal/domain/entity"
)

// Console levels reported in console events.
const (
	consoleLevelInfo  = 0
	consoleLevelWarn  = 1
	consoleLevelError = 2
)

var errScriptTimeout = errors.New("script execution timeout exceeded")

// scriptHost is the page environment of one guest: a sobek runtime with a
// minimal document, location, console and dialog API.
type scriptHost struct {
	vm *sobek.Runtime
}

func (b *Bridge) ExecuteScript(id entity.GuestInstanceID, script string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodExecuteScript, id, script)

	g, ok := b.live(id)
	if !ok {
		return
	}
	if err := b.runScript(g, script); err != nil {
		b.logger().Debug().Err(err).Int("guest_id", int(id)).Msg("guest script failed")
		b.enqueue(g, entity.Console{
			Level:    consoleLevelError,
			Message:  "Uncaught " + err.Error(),
			SourceID: g.currentURL(),
		})
	}
}

// runScript executes script in the guest page, interrupting it after the
// configured timeout. Callers hold b.mu.
func (b *Bridge) runScript(g *guest, script string) error {
	program, err := b.programs.compile(script)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	if g.script == nil {
		g.script = b.newScriptHost(g)
	}
	vm := g.script.vm

	timer := time.NewTimer(b.cfg.ScriptTimeout)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-timer.C:
			vm.Interrupt(errScriptTimeout)
		case <-done:
		}
	}()
	defer func() {
		timer.Stop()
		close(done)
		<-finished
		vm.ClearInterrupt()
	}()

	if _, err := vm.RunProgram(program); err != nil {
		var interrupted *sobek.InterruptedError
		if errors.As(err, &interrupted) {
			return errScriptTimeout
		}
		var exception *sobek.Exception
		if errors.As(err, &exception) {
			return errors.New(exception.Value().String())
		}
		return err
	}
	return nil
}

func (b *Bridge) newScriptHost(g *guest) *scriptHost {
	vm := sobek.New()

	document := vm.NewObject()
	_ = document.DefineAccessorProperty("title",
		vm.ToValue(func() string { return g.title }),
		vm.ToValue(func(title string) {
			g.title = title
			b.enqueue(g, entity.TitleSet{Title: title, ExplicitSet: true})
		}),
		sobek.FLAG_TRUE, sobek.FLAG_TRUE)
	_ = vm.Set("document", document)

	location := vm.NewObject()
	_ = location.DefineAccessorProperty("href",
		vm.ToValue(func() string { return g.currentURL() }),
		vm.ToValue(func(url string) { b.navigate(g, url) }),
		sobek.FLAG_TRUE, sobek.FLAG_TRUE)
	_ = location.Set("reload", func() {
		if g.currentURL() == "" {
			return
		}
		b.enqueue(g, entity.DidStartLoading{})
		b.commit(g)
		b.enqueue(g, entity.DidStopLoading{})
	})
	_ = vm.Set("location", location)

	console := vm.NewObject()
	for name, level := range map[string]int{
		"log":   consoleLevelInfo,
		"info":  consoleLevelInfo,
		"warn":  consoleLevelWarn,
		"error": consoleLevelError,
	} {
		_ = console.Set(name, func(call sobek.FunctionCall) sobek.Value {
			b.enqueue(g, entity.Console{
				Level:    level,
				Message:  joinArgs(call.Arguments),
				SourceID: g.currentURL(),
			})
			return sobek.Undefined()
		})
	}
	_ = vm.Set("console", console)

	dialog := func(messageType string) func(call sobek.FunctionCall) sobek.Value {
		return func(call sobek.FunctionCall) sobek.Value {
			d := entity.Dialog{
				OriginURL:   g.currentURL(),
				AcceptLang:  b.cfg.AcceptLang,
				MessageType: messageType,
			}
			if len(call.Arguments) > 0 {
				d.MessageText = call.Argument(0).String()
			}
			if len(call.Arguments) > 1 {
				d.DefaultPromptText = call.Argument(1).String()
			}
			b.enqueue(g, d)
			return sobek.Undefined()
		}
	}
	_ = vm.Set("alert", dialog("alert"))
	_ = vm.Set("confirm", dialog("confirm"))
	_ = vm.Set("prompt", dialog("prompt"))

	_ = vm.Set("close", func() { b.enqueue(g, entity.Close{}) })
	_ = vm.Set("open", func(call sobek.FunctionCall) sobek.Value {
		b.enqueue(g, entity.NewWindow{
			TargetURL:   call.Argument(0).String(),
			FrameName:   frameName(call),
			Disposition: "new-window",
		})
		return sobek.Null()
	})

	return &scriptHost{vm: vm}
}

func frameName(call sobek.FunctionCall) string {
	if len(call.Arguments) < 2 {
		return ""
	}
	return call.Argument(1).String()
}

func joinArgs(args []sobek.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
