package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Qthai16/queue-lab/common"
	"github.com/Qthai16/queue-lab/utils"
	"github.com/sevlyar/go-daemon"
)

const shutdownWait = time.Second

var cmdLineOpts = CmdlineOpts{}

type CmdlineOpts struct {
	Script  string
	LogPath string
	Verbose int
	Seed    int64
	Daemon  bool
	Color   bool
}

func flagInit() {
	flag.StringVar(&cmdLineOpts.Script, "f", "", "read commands from file instead of stdin")
	flag.StringVar(&cmdLineOpts.LogPath, "log", "", "log file path")
	flag.IntVar(&cmdLineOpts.Verbose, "v", utils.VerboseInfo, "verbosity level 0-3")
	flag.Int64Var(&cmdLineOpts.Seed, "seed", 0, "seed for RAND strings, 0 picks one from the clock")
	flag.BoolVar(&cmdLineOpts.Daemon, "daemon", false, "run the script detached, requires -f")
	flag.BoolVar(&cmdLineOpts.Color, "color", false, "colored log output")
}

// run executes the console and returns the process exit code.
func run() int {
	if len(cmdLineOpts.LogPath) > 0 {
		f, err := utils.OpenLogFile(cmdLineOpts.LogPath)
		if err != nil {
			utils.LogErro("failed to open log file %v: %v", cmdLineOpts.LogPath, err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
		if err := utils.RedirectFile(os.Stderr, f); err != nil {
			utils.LogWarn("%v", err)
		}
	}

	var in io.Reader = os.Stdin
	prompt := true
	if len(cmdLineOpts.Script) > 0 {
		f, err := os.Open(cmdLineOpts.Script)
		if err != nil {
			utils.LogErro("failed to open script %v: %v", cmdLineOpts.Script, err)
			return 1
		}
		defer f.Close()
		in = f
		prompt = false
	}

	seed := cmdLineOpts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := defaultOptions()
	opts.Verbose = cmdLineOpts.Verbose
	console := NewConsole(os.Stdout, opts, seed)
	utils.LogDebug("random seed %v", seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := console.Run(ctx, in, prompt); err != nil && !errors.Is(err, context.Canceled) {
			utils.LogErro("read commands: %v", err)
		}
	}()
	code := 0
	select {
	case <-done:
	case sig := <-utils.WaitTerminate():
		utils.LogInfo("got signal %v, stopping", sig)
		cancel()
		// Run only sees the cancel once its pending read returns
		t := common.BorrowTimer(shutdownWait)
		select {
		case <-done:
		case <-t.C:
			utils.LogWarn("console still waiting for input, closing anyway")
		}
		common.ReturnTimer(t)
		code = 1
	}

	console.Close()
	if utils.Verbose() >= utils.VerboseDebug {
		fmt.Print(console.Stats())
	}
	if n := console.ErrorCount(); n > 0 {
		utils.LogErro("%v command(s) failed", n)
		code = 1
	}
	return code
}

func absPath(p string) string {
	if len(p) == 0 {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func main() {
	flagInit()
	flag.Parse()
	utils.SetColorPrint(cmdLineOpts.Color)
	utils.SetVerbose(cmdLineOpts.Verbose)
	if cmdLineOpts.Daemon {
		if len(cmdLineOpts.Script) == 0 {
			utils.LogErro("-daemon requires -f")
			os.Exit(2)
		}
		cmdLineOpts.Script = absPath(cmdLineOpts.Script)
		cmdLineOpts.LogPath = absPath(cmdLineOpts.LogPath)
		utils.LogInfo("running script %v as daemon", cmdLineOpts.Script)
		cntxt := &daemon.Context{
			PidFileName: filepath.Join(os.TempDir(), fmt.Sprintf("qtest.%s.pid", filepath.Base(cmdLineOpts.Script))),
			PidFilePerm: 0644,
			LogFileName: cmdLineOpts.LogPath,
			LogFilePerm: 0644,
			WorkDir:     "./",
		}
		d, err := cntxt.Reborn()
		if err != nil {
			utils.LogErro("failed to run as daemon: %v", err)
			os.Exit(1)
		}
		if d != nil { // parent process
			return
		}
		code := run()
		cntxt.Release()
		os.Exit(code)
	}
	os.Exit(run())
}
