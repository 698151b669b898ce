// Package discovery advertises and finds calcpad keypad servers using mDNS.
//
// A keypad server (calcpad serve) registers itself as "_calcpad._tcp" in the
// "local." domain with TXT records describing its websocket path, version
// and repeated "=" policy. Clients (calcpad press, calcpad discover) browse
// for that service.
//
// # Usage Example
//
//	ad, err := discovery.Advertise("calcpad", 7337, []string{"path=/ws"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ad.Shutdown()
//
//	keypads, err := discovery.NewScanner().Scan(ctx)
//	for _, k := range keypads {
//	    fmt.Println(k.URL())
//	}
//
// # Network Requirements
//
// mDNS uses UDP multicast on port 5353; the scanner and the server must share
// a broadcast domain.
package discovery
