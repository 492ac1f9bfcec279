package ping

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// tcpQuorum は TCP 接続を並行に試行し、定足数に達したかを返す
// 結果が確定した時点で残りの試行をキャンセルし、全試行の終了を待ってから戻る
func (p *Prober) tcpQuorum(ctx context.Context, addr string, timeout time.Duration) bool {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan bool, p.attempts)

	var g errgroup.Group
	for i := 0; i < p.attempts; i++ {
		g.Go(func() error {
			results <- p.tcpAttempt(ctx, addr, timeout)
			return nil
		})
	}

	vote := newQuorumVote(p.attempts, p.quorum)
	for received := 0; received < p.attempts && !vote.decided(); received++ {
		vote.record(<-results)
	}

	cancel()
	_ = g.Wait()

	p.logger.Debug("TCPプローブの結果",
		"address", addr,
		"successes", vote.successes,
		"failures", vote.failures,
		"reached", vote.reached(),
	)

	return vote.reached()
}

// tcpAttempt は1回の TCP 接続を試行する。接続できた場合はすぐに閉じる
func (p *Prober) tcpAttempt(ctx context.Context, addr string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
