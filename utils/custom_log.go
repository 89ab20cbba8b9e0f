package utils

import (
	"fmt"
	"log"
)

const (
	VerboseQuiet = iota
	VerboseError
	VerboseInfo
	VerboseDebug
)

var (
	_colorPrint = false
	_verbose    = VerboseInfo
)

type logLevel struct {
	tag   string
	color string
	min   int
}

var (
	lvDebug = logLevel{tag: "DEBG", color: "\033[36m", min: VerboseDebug}
	lvInfo  = logLevel{tag: "INFO", color: "\033[32m", min: VerboseInfo}
	lvWarn  = logLevel{tag: "WARN", color: "\033[33m", min: VerboseError}
	lvErro  = logLevel{tag: "ERRO", color: "\033[31m", min: VerboseError}
)

func SetColorPrint(enable bool) {
	_colorPrint = enable
}

// SetVerbose sets how chatty the Log* helpers are, VerboseQuiet silences all
// but LogFatal.
func SetVerbose(level int) {
	_verbose = min(max(level, VerboseQuiet), VerboseDebug)
}

func Verbose() int {
	return _verbose
}

func format(lv logLevel, f string, v ...interface{}) string {
	msg := fmt.Sprintf(lv.tag+" "+f, v...)
	if _colorPrint {
		return lv.color + msg + "\033[0m"
	}
	return msg
}

func logAt(lv logLevel, f string, v ...interface{}) {
	if _verbose < lv.min {
		return
	}
	log.Println(format(lv, f, v...))
}

func LogDebug(format string, v ...interface{}) {
	logAt(lvDebug, format, v...)
}

func LogInfo(format string, v ...interface{}) {
	logAt(lvInfo, format, v...)
}

func LogWarn(format string, v ...interface{}) {
	logAt(lvWarn, format, v...)
}

func LogErro(format string, v ...interface{}) {
	logAt(lvErro, format, v...)
}

func LogFatal(f string, v ...interface{}) {
	log.Fatalln(format(logLevel{tag: "FATAL", color: "\033[31m"}, f, v...))
}
