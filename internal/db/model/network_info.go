package model

const NetworkInfoCollection = "network_info"

type NetworkInfo struct {
	Chain          string `bson:"chain"`
	NodeName       string `bson:"node_name"`
	NodeVersion    string `bson:"node_version"`
	RuntimeVersion uint32 `bson:"runtime_version"`
}
