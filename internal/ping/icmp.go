package ping

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	protocolICMP     = 1  // ipv4.ICMPTypeEcho.Protocol()
	protocolIPv6ICMP = 58 // ipv6.ICMPTypeEchoRequest.Protocol()
	icmpPayload      = "camprobe"
)

// icmpEndpoint は ICMP ソケットの種類ごとの設定
type icmpEndpoint struct {
	network  string
	address  string
	protocol int
	echo     icmp.Type
	reply    icmp.Type
	datagram bool // 非特権ソケット（カーネルが ID を書き換える）
}

// endpointsFor は宛先アドレスに応じて試行するソケットを優先順に返す
func endpointsFor(ip net.IP) []icmpEndpoint {
	if ip.To4() != nil {
		return []icmpEndpoint{
			{"udp4", "0.0.0.0", protocolICMP, ipv4.ICMPTypeEcho, ipv4.ICMPTypeEchoReply, true},
			{"ip4:icmp", "0.0.0.0", protocolICMP, ipv4.ICMPTypeEcho, ipv4.ICMPTypeEchoReply, false},
		}
	}
	return []icmpEndpoint{
		{"udp6", "::", protocolIPv6ICMP, ipv6.ICMPTypeEchoRequest, ipv6.ICMPTypeEchoReply, true},
		{"ip6:ipv6-icmp", "::", protocolIPv6ICMP, ipv6.ICMPTypeEchoRequest, ipv6.ICMPTypeEchoReply, false},
	}
}

// ICMPPinger は ICMP エコー要求を送信する Pinger 実装
// 非特権の datagram ソケットを優先し、使えなければ raw ソケットを使う
type ICMPPinger struct {
	resolver *net.Resolver
}

// NewICMPPinger は新しい ICMPPinger を作成する
func NewICMPPinger() *ICMPPinger {
	return &ICMPPinger{resolver: net.DefaultResolver}
}

// Ping は host に count 回までエコー要求を送り、いずれかに応答があれば true を返す
func (p *ICMPPinger) Ping(ctx context.Context, host string, timeout time.Duration, count int) (bool, error) {
	ip, err := p.resolve(ctx, host)
	if err != nil {
		return false, err
	}

	conn, ep, err := listenICMP(ip)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = conn.Close()
	}()

	id := os.Getpid() & 0xffff
	var lastErr error
	for seq := 1; seq <= count; seq++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		ok, err := sendEcho(ctx, conn, ep, ip, id, seq, timeout)
		if ok {
			return true, nil
		}
		lastErr = err
	}

	return false, lastErr
}

// resolve はホスト名を IP アドレスに解決する（IPv4 を優先）
func (p *ICMPPinger) resolve(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}

	addrs, err := p.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("ホスト %s の名前解決に失敗: %w", host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("ホスト %s のアドレスが見つかりません", host)
	}

	for _, a := range addrs {
		if a.IP.To4() != nil {
			return a.IP, nil
		}
	}
	return addrs[0].IP, nil
}

// listenICMP は利用可能な ICMP ソケットを開く
func listenICMP(ip net.IP) (*icmp.PacketConn, icmpEndpoint, error) {
	var errs []error
	for _, ep := range endpointsFor(ip) {
		conn, err := icmp.ListenPacket(ep.network, ep.address)
		if err == nil {
			return conn, ep, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", ep.network, err))
	}
	return nil, icmpEndpoint{}, fmt.Errorf("ICMPソケットを開けません: %w", errors.Join(errs...))
}

// sendEcho は1回分のエコー要求を送り、タイムアウトまで応答を待つ
func sendEcho(ctx context.Context, conn *icmp.PacketConn, ep icmpEndpoint, ip net.IP, id, seq int, timeout time.Duration) (bool, error) {
	msg := icmp.Message{
		Type: ep.echo,
		Code: 0,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: []byte(icmpPayload)},
	}
	b, err := msg.Marshal(nil)
	if err != nil {
		return false, fmt.Errorf("ICMPメッセージの生成に失敗: %w", err)
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false, err
	}

	var dst net.Addr = &net.IPAddr{IP: ip}
	if ep.datagram {
		dst = &net.UDPAddr{IP: ip}
	}
	if _, err := conn.WriteTo(b, dst); err != nil {
		return false, fmt.Errorf("ICMPエコーの送信に失敗: %w", err)
	}

	buf := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(buf)
		if err != nil {
			return false, err
		}

		reply, err := icmp.ParseMessage(ep.protocol, buf[:n])
		if err != nil || reply.Type != ep.reply || !peerIs(peer, ip) {
			continue
		}

		echo, ok := reply.Body.(*icmp.Echo)
		if !ok {
			continue
		}
		if ep.datagram || echo.ID == id {
			return true, nil
		}
	}
}

// peerIs は応答元が宛先と一致するかを返す
func peerIs(peer net.Addr, ip net.IP) bool {
	switch a := peer.(type) {
	case *net.UDPAddr:
		return a.IP.Equal(ip)
	case *net.IPAddr:
		return a.IP.Equal(ip)
	default:
		return false
	}
}
