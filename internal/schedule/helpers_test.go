package schedule

import logx "marquee/pkg/logx"

func nopLogger() logx.Logger { return logx.Nop() }
