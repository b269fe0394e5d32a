package detect

import "slices"

// ServiceInfo describes a well-known port assignment. The table is
// informational: entries whose protocol is UDP still appear in the
// default port list even though the scanner only attempts TCP connects,
// so a UDP-only port simply never reports open.
type ServiceInfo struct {
	Service  string
	Protocol string
}

// KnownServices maps well-known and commonly repurposed ports to their
// conventional service assignments.
var KnownServices = map[uint16]ServiceInfo{
	20:    {"FTP data transfer", "TCP"},
	21:    {"FTP control", "TCP"},
	22:    {"SSH (Secure Shell)", "TCP"},
	23:    {"Telnet (remote login)", "TCP"},
	25:    {"SMTP (Simple Mail Transfer Protocol)", "TCP"},
	53:    {"DNS (Domain Name System)", "TCP/UDP"},
	67:    {"DHCP server", "UDP"},
	68:    {"DHCP client", "UDP"},
	69:    {"TFTP (Trivial File Transfer Protocol)", "UDP"},
	80:    {"HTTP (Hypertext Transfer Protocol)", "TCP"},
	110:   {"POP3 (Post Office Protocol v3)", "TCP"},
	119:   {"NNTP (Network News Transfer Protocol)", "TCP"},
	123:   {"NTP (Network Time Protocol)", "UDP"},
	135:   {"Microsoft RPC (Remote Procedure Call)", "TCP"},
	137:   {"NetBIOS name service", "UDP"},
	138:   {"NetBIOS datagram service", "UDP"},
	139:   {"NetBIOS session service", "TCP"},
	143:   {"IMAP (Internet Message Access Protocol)", "TCP"},
	161:   {"SNMP (Simple Network Management Protocol)", "UDP"},
	162:   {"SNMP trap", "UDP"},
	194:   {"IRC (Internet Relay Chat)", "TCP"},
	389:   {"LDAP (Lightweight Directory Access Protocol)", "TCP/UDP"},
	465:   {"SMTPS (SMTP over TLS)", "TCP"},
	514:   {"Syslog", "UDP"},
	636:   {"LDAPS (LDAP over TLS)", "TCP"},
	1025:  {"NFS or Microsoft RPC mapper", "TCP"},
	1433:  {"Microsoft SQL Server", "TCP"},
	1521:  {"Oracle database", "TCP"},
	1720:  {"H.323 call signaling", "TCP"},
	1723:  {"PPTP VPN (Point-to-Point Tunneling Protocol)", "TCP"},
	2049:  {"NFS (Network File System)", "TCP"},
	2121:  {"FTP alternate", "TCP"},
	2222:  {"SSH alternate", "TCP"},
	2375:  {"Docker daemon", "TCP"},
	3000:  {"HTTP development server", "TCP"},
	3306:  {"MySQL database", "TCP"},
	3389:  {"RDP (Remote Desktop Protocol)", "TCP"},
	5000:  {"UPnP (Universal Plug and Play)", "UDP/TCP"},
	5001:  {"Flask alternate", "TCP"},
	5002:  {"Flask alternate", "TCP"},
	5003:  {"Flask alternate", "TCP"},
	5060:  {"SIP (Session Initiation Protocol)", "UDP/TCP"},
	5140:  {"Syslog alternate", "UDP"},
	5173:  {"Vite development server", "TCP"},
	5500:  {"VNC alternate", "TCP"},
	5501:  {"VNC alternate", "TCP"},
	5502:  {"VNC alternate", "TCP"},
	5900:  {"VNC (Virtual Network Computing)", "TCP"},
	5901:  {"VNC alternate", "TCP"},
	5902:  {"VNC alternate", "TCP"},
	5903:  {"VNC alternate", "TCP"},
	6000:  {"X11 (X Window System)", "TCP"},
	6001:  {"X11 alternate", "TCP"},
	6002:  {"X11 alternate", "TCP"},
	6003:  {"X11 alternate", "TCP"},
	6379:  {"Redis (remote dictionary server)", "TCP"},
	8000:  {"HTTP alternate", "TCP"},
	8001:  {"HTTP alternate", "TCP"},
	8002:  {"HTTP alternate", "TCP"},
	8003:  {"HTTP alternate", "TCP"},
	8004:  {"HTTP alternate", "TCP"},
	8080:  {"HTTP alternate", "TCP"},
	8081:  {"HTTP alternate", "TCP"},
	8082:  {"HTTP alternate", "TCP"},
	8083:  {"HTTP alternate", "TCP"},
	8084:  {"HTTP alternate", "TCP"},
	8085:  {"HTTP alternate", "TCP"},
	8443:  {"HTTPS alternate", "TCP"},
	8880:  {"HTTP alternate", "TCP"},
	8881:  {"HTTP alternate", "TCP"},
	8882:  {"HTTP alternate", "TCP"},
	8883:  {"HTTP alternate", "TCP"},
	8888:  {"HTTP alternate", "TCP"},
	9000:  {"SonarQube or application server", "TCP"},
	9090:  {"HTTP alternate", "TCP"},
	9091:  {"HTTP alternate", "TCP"},
	9092:  {"HTTP alternate", "TCP"},
	9093:  {"HTTP alternate", "TCP"},
	9094:  {"HTTP alternate", "TCP"},
	10000: {"Webmin (system administration)", "TCP"},
	10002: {"Webmin alternate", "TCP"},
	10003: {"Webmin alternate", "TCP"},
	10004: {"Webmin alternate", "TCP"},
	10005: {"Webmin alternate", "TCP"},
	11211: {"Memcached (in-memory cache)", "TCP"},
	11212: {"Memcached alternate", "TCP"},
	11213: {"Memcached alternate", "TCP"},
	11214: {"Memcached alternate", "TCP"},
	11215: {"Memcached alternate", "TCP"},
	27017: {"MongoDB (document database)", "TCP"},
	27018: {"MongoDB alternate", "TCP"},
	27019: {"MongoDB alternate", "TCP"},
	27020: {"MongoDB alternate", "TCP"},
	27021: {"MongoDB alternate", "TCP"},
}

// DefaultPorts returns the sorted keys of KnownServices. This is the
// port list a scan uses when the caller does not supply one.
func DefaultPorts() []uint16 {
	ports := make([]uint16, 0, len(KnownServices))
	for port := range KnownServices {
		ports = append(ports, port)
	}
	slices.Sort(ports)
	return ports
}
