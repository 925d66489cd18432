// Package bridge exposes a camera's control channel over WebSocket.
//
// A Pelco D unit usually hangs off an RS-422/RS-485 adapter on whatever
// machine is physically near it. The bridge lets that machine share the
// link: clients connect over WebSocket and exchange raw protocol frames
// as binary messages. Inbound frames are validated (framing and
// checksum) before they touch the wire, so a buggy client cannot put
// garbage on the serial bus. Bytes coming back from the unit are
// relayed to the controlling client unmodified.
//
// Only one client may control the link at a time. RS-485 is a
// single-master bus; interleaving frames from two controllers produces
// undefined camera behaviour, so a second connection is refused while
// the first is active.
package bridge
