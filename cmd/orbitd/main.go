package main

import (
	"errors"
	"flag"
	"fmt"
	gio "io"
	"net"
	"os"
	"os/signal"
	"runtime/trace"
	"strings"
	"syscall"

	"github.com/colinrgodsey/serial"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/colinrgodsey/orbitd/lib/config"
	"github.com/colinrgodsey/orbitd/lib/io"
	"github.com/colinrgodsey/orbitd/lib/pipeline"
	"github.com/colinrgodsey/orbitd/lib/render"
	"github.com/colinrgodsey/orbitd/lib/sim"
	"github.com/colinrgodsey/orbitd/lib/vec"
)

const (
	readBufferSize = 24
	frameQueueSize = 8
)

var (
	configPath  string
	presetName  string
	listPresets bool

	devicePath string
	baud       int
	addr       string

	batchFrames int
	pngPath     string
	fieldPath   string
	pngSize     int

	tracePath string
	doProf    bool
)

var log = logrus.New()

func handler(head io.Conn, size int, h func(head, tail io.Conn)) (tail io.Conn) {
	head = head.Flip()
	tail = io.NewConn(size, size)

	go h(head, tail)

	return
}

func orbitdPipeline[V vec.Vec[V]](c io.Conn, conf config.Config, d *sim.Driver[V]) io.Conn {
	c = handler(c, readBufferSize, pipeline.SourceHandler)
	c = handler(c, frameQueueSize, pipeline.SimHandler(d, conf.Frames()))
	c = handler(c, frameQueueSize, pipeline.RenderHandler(render.Plot{View: conf.ViewMax, Size: pngSize}))
	return c
}

func main() {
	flag.StringVar(&configPath, "config", "./config.hjson", "Path to HJSON config file")
	flag.StringVar(&presetName, "preset", "", "Use a built-in scenario instead of the config file")
	flag.BoolVar(&listPresets, "presets", false, "List built-in scenarios and exit")

	flag.StringVar(&devicePath, "device", "", "Path to serial device for frame output")
	flag.IntVar(&baud, "baud", 0, "Baud rate for serial device")
	flag.StringVar(&addr, "addr", "", "TCP address for frame output")

	flag.IntVar(&batchFrames, "batch", 0, "Run this many frames without reading stdin")
	flag.StringVar(&pngPath, "png", "", "Render trails to this PNG after a batch run")
	flag.StringVar(&fieldPath, "field", "", "Render the potential field to this PNG after a batch run")
	flag.IntVar(&pngSize, "size", 800, "PNG width and height in pixels")

	flag.StringVar(&tracePath, "trace", "", "Write an execution trace to this file (debug)")
	flag.BoolVar(&doProf, "prof", false, "Enable profiling (debug)")
	flag.Parse()

	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	if listPresets {
		for _, name := range config.PresetNames() {
			fmt.Println(name)
		}
		return
	}
	if devicePath != "" && baud <= 0 {
		log.Fatal("Baud flag required with device.")
	}

	if err := run(); err != nil {
		log.WithError(err).Fatal("orbitd stopped")
	}
}

func run() error {
	if tracePath != "" {
		stop, err := startTrace(tracePath)
		if err != nil {
			return err
		}
		defer stop()
	}
	if doProf {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.WithFields(logrus.Fields{
		"bodies":     len(conf.Bodies),
		"dimensions": conf.Dimensions,
		"dt":         conf.Dt,
		"frames":     conf.Frames(),
		"frame-time": conf.FrameTime(),
	}).Info("config loaded")

	switch conf.Dimensions {
	case 2:
		return serve[mgl64.Vec2](conf)
	case 3:
		return serve[mgl64.Vec3](conf)
	}
	return fmt.Errorf("%w: unsupported dimensions %v", config.ErrInvalid, conf.Dimensions)
}

// startTrace writes a runtime trace to path until stop is called.
func startTrace(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	if err = trace.Start(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}
	log.WithField("path", path).Info("tracing")
	return func() {
		trace.Stop()
		f.Close()
	}, nil
}

func loadConfig() (config.Config, error) {
	if presetName != "" {
		return config.Preset(presetName)
	}
	return config.LoadConfig(configPath)
}

func serve[V vec.Vec[V]](conf config.Config) error {
	d, err := sim.FromConfig[V](conf)
	if err != nil {
		return err
	}

	var input gio.Reader = os.Stdin
	if batchFrames > 0 {
		input = strings.NewReader(batchScript())
	}

	c := io.NewConn(32, 32)
	done := make(chan error, 1)
	go func() {
		done <- io.LinePipe(input, os.Stdout, c.Flip())
	}()
	c = orbitdPipeline(c, conf, d)

	sinkDone, err := tailSink(c)
	if err != nil {
		return err
	}

	err = <-done
	if serr := <-sinkDone; serr != nil && !errors.Is(serr, gio.EOF) {
		log.WithError(serr).Warn("frame sink closed")
	}
	if errors.Is(err, gio.EOF) {
		err = nil
	}
	if err == nil {
		err = d.Err()
	}
	log.WithField("frames", d.Frames()).Info("simulation finished")
	return err
}

func batchScript() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "G1 F%v\nM105\n", batchFrames)
	if pngPath != "" {
		fmt.Fprintf(&sb, "M240 P%v\n", pngPath)
	}
	if fieldPath != "" {
		fmt.Fprintf(&sb, "M241 P%v\n", fieldPath)
	}
	return sb.String()
}

func closeOnExit(closer func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		closer()
		os.Exit(0)
	}()
}

// tailSink connects the bottom of the pipeline to the frame output, if
// one is configured. Otherwise frames past the renderer are dropped.
func tailSink(c io.Conn) (<-chan error, error) {
	var tail gio.ReadWriteCloser
	var err error

	done := make(chan error, 1)
	switch {
	case devicePath != "":
		cfg := &serial.Config{Name: devicePath, Baud: baud}
		if tail, err = serial.OpenPort(cfg); err != nil {
			return nil, fmt.Errorf("failed to open %v: %w", devicePath, err)
		}
		log.WithField("device", devicePath).Info("writing frames to serial device")
	case addr != "":
		if tail, err = net.Dial("tcp", addr); err != nil {
			return nil, fmt.Errorf("failed to connect to %v: %w", addr, err)
		}
		log.WithField("addr", addr).Info("writing frames to tcp")
	default:
		go func() {
			io.Discard(c)
			done <- nil
		}()
		closeOnExit(func() {
			log.Info("interrupted, shutting down")
		})
		return done, nil
	}

	closeOnExit(func() {
		log.Info("interrupted, closing frame output")
		tail.Close()
	})
	go func() {
		done <- io.LinePipe(tail, tail, c)
	}()
	return done, nil
}
